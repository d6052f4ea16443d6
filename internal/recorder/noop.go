package recorder

// NoopRecorder discards everything. Used when no database path is
// configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordScan(*ScanSnapshot) error         { return nil }
func (NoopRecorder) RecordBacktest(*BacktestSnapshot) error { return nil }
func (NoopRecorder) Close() error                           { return nil }
