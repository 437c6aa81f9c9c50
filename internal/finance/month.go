package finance

import (
	"fmt"
	"time"
)

// MonthLayout is the textual form of a Month, e.g. "2024-01".
const MonthLayout = "2006-01"

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "2006-01" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", s, MonthLayout, err)
	}
	return MonthOf(t), nil
}

// MonthOf returns the month t falls in, in t's own location.
func MonthOf(t time.Time) Month {
	y, m, _ := t.Date()
	return Month{Year: y, Month: m}
}

// Start returns midnight UTC of the first day of the month.
func (m Month) Start() time.Time { return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC) }

// End returns the exclusive upper bound of the month.
func (m Month) End() time.Time { return m.Start().AddDate(0, 1, 0) }

// Prev returns the month before m.
func (m Month) Prev() Month { return MonthOf(m.Start().AddDate(0, -1, 0)) }

// Contains reports whether t's calendar date falls inside the month.
func (m Month) Contains(t time.Time) bool {
	y, mo, _ := t.Date()
	return y == m.Year && mo == m.Month
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool { return m.Year == 0 && m.Month == 0 }

// String formats the month as "2006-01".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthsBetween returns the number of whole calendar months from one date to
// another. A month counts once the day of month of from is reached, so
// 2024-01-01 to 2024-07-01 is 6 and 2024-01-31 to 2024-02-29 is 0. The result
// is negative when to is before from.
func MonthsBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	months := (ty-fy)*12 + int(tm-fm)
	switch {
	case months > 0 && td < fd:
		months--
	case months < 0 && td > fd:
		months++
	}
	return months
}

// AddMonths adds n calendar months to t, clamping the day to the last day of
// the target month instead of overflowing into the next one.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// civilDays returns the number of calendar days from a to b, ignoring the
// time of day.
func civilDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
