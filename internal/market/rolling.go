package market

import "github.com/shopspring/decimal"

const rollingWindow = 60

// RollingAverage keeps the most recent one-minute closes and their mean.
// The mean is zero until the window is full; once a sixty-first value
// arrives the oldest is evicted and the window stays at sixty.
type RollingAverage struct {
	values []decimal.Decimal
	mean   decimal.Decimal
}

// Append adds a close and recomputes the mean.
func (r *RollingAverage) Append(v decimal.Decimal) {
	r.values = append(r.values, v)
	if len(r.values) < rollingWindow {
		r.mean = decimal.Zero
		return
	}
	if len(r.values) > rollingWindow {
		r.values = r.values[1:]
	}
	sum := decimal.Zero
	for _, value := range r.values {
		sum = sum.Add(value)
	}
	r.mean = sum.Div(decimal.NewFromInt(int64(len(r.values))))
}

// Mean returns the current rolling mean, zero while the window fills.
func (r *RollingAverage) Mean() decimal.Decimal {
	return r.mean
}

// Len returns the number of stored closes.
func (r *RollingAverage) Len() int {
	return len(r.values)
}
