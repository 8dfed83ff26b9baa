package schedule

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Weekday tokens accepted in a day set, in calendar order.
var weekdayOrder = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var weekdayByToken = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// DaySet is the set of weekdays an alarm repeats on. Duplicates collapse and
// ordering is irrelevant; unknown tokens are dropped on parse. An empty set is
// legal but un-schedulable.
type DaySet map[string]struct{}

// ParseDaySet builds a DaySet from weekday tokens. Tokens that are not one of
// Sun..Sat are silently ignored.
func ParseDaySet(tokens []string) DaySet {
	set := make(DaySet)
	for _, tok := range tokens {
		if _, ok := weekdayByToken[tok]; ok {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the set includes the given token.
func (d DaySet) Contains(token string) bool {
	_, ok := d[token]
	return ok
}

// IsEmpty reports whether the set has no schedulable weekdays.
func (d DaySet) IsEmpty() bool {
	return len(d) == 0
}

// Tokens returns the members of the set in canonical Sun..Sat order.
func (d DaySet) Tokens() []string {
	tokens := make([]string, 0, len(d))
	for _, tok := range weekdayOrder {
		if _, ok := d[tok]; ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Weekdays returns the members of the set as time.Weekday values.
func (d DaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(d))
	for _, tok := range weekdayOrder {
		if _, ok := d[tok]; ok {
			days = append(days, weekdayByToken[tok])
		}
	}
	return days
}

// String serializes the set to a comma-joined string for storage. The empty
// set serializes to the empty string.
func (d DaySet) String() string {
	return strings.Join(d.Tokens(), ",")
}

// Value implements driver.Valuer so gorm can persist the set as a single
// column.
func (d DaySet) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner, the inverse of Value. An empty or NULL column
// scans to the empty set.
func (d *DaySet) Scan(value interface{}) error {
	if value == nil {
		*d = make(DaySet)
		return nil
	}
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan day set from %T", value)
	}
	if raw == "" {
		*d = make(DaySet)
		return nil
	}
	*d = ParseDaySet(strings.Split(raw, ","))
	return nil
}
