package model

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestValidateSeries_OK(t *testing.T) {
	s := PriceSeries{
		Symbol: "SPY",
		Bars: []PriceBar{
			{Date: day(0), Close: 100, Volume: 1000},
			{Date: day(1), Close: 101, Volume: 900},
			{Date: day(2), Close: 99.5, Volume: 1100},
		},
	}
	if err := ValidateSeries(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSeries_Empty(t *testing.T) {
	if err := ValidateSeries(PriceSeries{Symbol: "SPY"}); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestValidateSeries_NonMonotonicDates(t *testing.T) {
	s := PriceSeries{
		Symbol: "SPY",
		Bars: []PriceBar{
			{Date: day(1), Close: 100, Volume: 1000},
			{Date: day(0), Close: 101, Volume: 900},
		},
	}
	if err := ValidateSeries(s); err == nil {
		t.Fatal("expected error for descending dates")
	}
}

func TestValidateSeries_DuplicateDates(t *testing.T) {
	s := PriceSeries{
		Symbol: "SPY",
		Bars: []PriceBar{
			{Date: day(0), Close: 100, Volume: 1000},
			{Date: day(0), Close: 101, Volume: 900},
		},
	}
	if err := ValidateSeries(s); err == nil {
		t.Fatal("expected error for duplicate dates")
	}
}

func TestValidateSeries_BadValues(t *testing.T) {
	bad := []PriceSeries{
		{Symbol: "A", Bars: []PriceBar{{Date: day(0), Close: 0, Volume: 10}}},
		{Symbol: "B", Bars: []PriceBar{{Date: day(0), Close: -5, Volume: 10}}},
		{Symbol: "C", Bars: []PriceBar{{Date: day(0), Close: 100, Volume: -1}}},
	}
	for _, s := range bad {
		if err := ValidateSeries(s); err == nil {
			t.Errorf("series %s: expected validation error", s.Symbol)
		}
	}
}
