package chain

import "time"

// DefaultExpirations is the number of monthly expirations in a snapshot.
const DefaultExpirations = 5

// expiryLayout is the ISO date format used for expiration keys.
const expiryLayout = "2006-01-02"

// NextExpirations returns count upcoming standardized expiration dates as ISO
// "YYYY-MM-DD" strings: the third Friday of successive calendar months,
// strictly after now, duplicate-free and increasing. Up to 2*count months are
// scanned; if none qualify it falls back to a single date seven days out so
// the chain always has at least one expiry.
func NextExpirations(now time.Time, count int) []string {
	if count <= 0 {
		count = DefaultExpirations
	}
	out := make([]string, 0, count)
	year, month := now.Year(), now.Month()
	for i := 0; i < count*2; i++ {
		tf := ThirdFriday(year, month, now.Location())
		iso := tf.Format(expiryLayout)
		if tf.After(now) && !containsString(out, iso) {
			out = append(out, iso)
			if len(out) >= count {
				break
			}
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	if len(out) == 0 {
		return []string{now.AddDate(0, 0, 7).Format(expiryLayout)}
	}
	return out
}

// ThirdFriday returns the third Friday of the given month at midnight: the
// first Friday of the month plus fourteen days.
func ThirdFriday(year int, month time.Month, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysUntilFriday := (int(time.Friday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, daysUntilFriday+14)
}

// ExpirySeed derives the deterministic quote seed for one expiration: the
// byte sum of the ISO date string plus an index offset. The offset keeps
// expirations whose date strings happen to share a byte sum from producing
// colliding quote streams.
func ExpirySeed(expiry string, index int) float64 {
	sum := 0
	for _, b := range []byte(expiry) {
		sum += int(b)
	}
	return float64(sum + index*1000)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
