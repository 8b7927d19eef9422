package registry

import (
	"fmt"
	"time"
)

// QuarterExpiration returns the standing quarterly futures expiration:
// the last Friday of March, June, September or December relative to ref.
// From the eve of that Friday onward the date rolls to the next quarter,
// so nothing ever subscribes to a contract expiring within a day.
func QuarterExpiration(ref time.Time) time.Time {
	month := ((int(ref.Month())-1)/3)*3 + 3
	candidate := lastFriday(ref.Year(), time.Month(month))
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if !day.Before(candidate.AddDate(0, 0, -1)) {
		year := ref.Year()
		month += 3
		if month > 12 {
			month = 3
			year++
		}
		candidate = lastFriday(year, time.Month(month))
	}
	return candidate
}

func lastFriday(year int, month time.Month) time.Time {
	day := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) - int(time.Friday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// DaysToExpiration returns whole days between ref and the standing
// quarterly expiration.
func DaysToExpiration(ref time.Time) int {
	return int(QuarterExpiration(ref).Sub(ref).Hours() / 24)
}

// DateSuffix encodes the expiration as the yymmdd digits Okx and Binance
// append to futures symbols.
func DateSuffix(expiration time.Time) string {
	return expiration.Format("060102")
}

// monthCodes maps quarterly expiration months to their futures letter.
var monthCodes = map[time.Month]string{
	time.March:     "H",
	time.June:      "M",
	time.September: "U",
	time.December:  "Z",
}

// BybitCode encodes the expiration in Bybit's inverse-futures convention:
// the month letter followed by the two-digit year.
func BybitCode(expiration time.Time) string {
	code, ok := monthCodes[expiration.Month()]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s%02d", code, expiration.Year()%100)
}
