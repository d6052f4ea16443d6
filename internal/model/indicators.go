package model

// TechnicalIndicators holds the supplementary trend indicators computed
// over a daily series. Each value carries an availability flag; an
// indicator with too little history is reported unavailable instead of
// defaulting to a misleading number.
type TechnicalIndicators struct {
	LastClose float64
	MA50      float64
	MA200     float64
	RSI       float64
	HasMA50   bool
	HasMA200  bool
	HasRSI    bool
}
