package market

import (
	"time"

	"github.com/shopspring/decimal"

	"main/internal/market/enum"
)

// CandleTick is a normalized candle update from a venue adapter.
// Day/Time use the calendar encodings below; Day == 0 means the adapter
// did not provide boundary info and only the OHLC values apply.
type CandleTick struct {
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
	Day   int
	Time  int
	Final bool
}

// Candle holds the live OHLC of one interval.
// Day is YYYYMMDD, Time is HHMM00.
type Candle struct {
	Interval enum.Interval
	Day      int
	Time     int
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
}

// NewCandle seeds the candle identity with the current UTC minute so the
// first provided day/time is detected as a boundary.
func NewCandle(interval enum.Interval) Candle {
	now := time.Now().UTC()
	return Candle{
		Interval: interval,
		Day:      EncodeDay(now),
		Time:     EncodeTime(now),
	}
}

// EncodeDay converts t to the YYYYMMDD calendar encoding.
func EncodeDay(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// EncodeTime converts t to the HHMM00 time-of-day encoding.
func EncodeTime(t time.Time) int {
	return t.Hour()*10000 + t.Minute()*100
}

func (c *Candle) applyOHLC(tick CandleTick) {
	c.Open = tick.Open
	c.High = tick.High
	c.Low = tick.Low
	c.Close = tick.Close
}

// isBoundary reports whether tick opens a new interval for this candle.
func (c *Candle) isBoundary(tick CandleTick) bool {
	if tick.Final {
		return true
	}
	if tick.Day == 0 {
		return false
	}
	return tick.Day != c.Day || tick.Time != c.Time
}
