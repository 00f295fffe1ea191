// Package timedate wraps a Unix instant with the display rules used by note cards.
package timedate

import (
	"encoding/json"
	"fmt"
	"time"
)

// SecondsInWeek is the age after which FormatTime stops rendering a clock time.
const SecondsInWeek int64 = 7 * 24 * 60 * 60

// TimeDate is an immutable instant with second precision.
type TimeDate struct {
	epoch int64
}

// Now returns the current instant.
func Now() TimeDate {
	return FromTime(time.Now())
}

// FromUnix wraps epoch seconds.
func FromUnix(sec int64) TimeDate {
	return TimeDate{epoch: sec}
}

// FromTime truncates t to whole seconds.
func FromTime(t time.Time) TimeDate {
	return TimeDate{epoch: t.Unix()}
}

// Unix returns the epoch seconds.
func (d TimeDate) Unix() int64 {
	return d.epoch
}

// Time returns the instant in the local zone.
func (d TimeDate) Time() time.Time {
	return time.Unix(d.epoch, 0).Local()
}

// Compare returns -1, 0 or +1 ordering d against o by epoch value.
func (d TimeDate) Compare(o TimeDate) int {
	switch {
	case d.epoch < o.epoch:
		return -1
	case d.epoch > o.epoch:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly earlier than o.
func (d TimeDate) Before(o TimeDate) bool {
	return d.epoch < o.epoch
}

// FormatDate renders the local calendar date as YYYY-MM-DD.
func (d TimeDate) FormatDate() string {
	return d.Time().Format(time.DateOnly)
}

// FormatTime renders H:MM, or "" once the instant is more than a week old.
func (d TimeDate) FormatTime() string {
	return d.FormatTimeAt(time.Now())
}

// FormatTimeAt is FormatTime with an explicit "now".
func (d TimeDate) FormatTimeAt(now time.Time) string {
	if now.Unix()-d.epoch > SecondsInWeek {
		return ""
	}
	t := d.Time()
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// FormatDateTime renders "date @ time", or just the date for old instants.
func (d TimeDate) FormatDateTime() string {
	return d.FormatDateTimeAt(time.Now())
}

// FormatDateTimeAt is FormatDateTime with an explicit "now".
func (d TimeDate) FormatDateTimeAt(now time.Time) string {
	date := d.FormatDate()
	if clock := d.FormatTimeAt(now); clock != "" {
		return date + " @ " + clock
	}
	return date
}

// String implements fmt.Stringer.
func (d TimeDate) String() string {
	return d.FormatDateTime()
}

type wireTimeDate struct {
	EpochTime int64 `json:"epoch_time"`
}

// MarshalJSON encodes the instant as {"epoch_time": N}.
func (d TimeDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTimeDate{EpochTime: d.epoch})
}

// UnmarshalJSON decodes {"epoch_time": N}.
func (d *TimeDate) UnmarshalJSON(b []byte) error {
	var w wireTimeDate
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("timedate: %w", err)
	}
	d.epoch = w.EpochTime
	return nil
}

// Null is an optional TimeDate, in the style of sql.NullTime.
type Null struct {
	TimeDate TimeDate
	Valid    bool
}

// Some wraps d as a present value.
func Some(d TimeDate) Null {
	return Null{TimeDate: d, Valid: true}
}

// Ptr returns nil for an absent value.
func (n Null) Ptr() *TimeDate {
	if !n.Valid {
		return nil
	}
	d := n.TimeDate
	return &d
}

// NullFromPtr is the inverse of Ptr.
func NullFromPtr(d *TimeDate) Null {
	if d == nil {
		return Null{}
	}
	return Some(*d)
}
