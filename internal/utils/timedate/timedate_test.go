package timedate

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

func TestFormatTimeAt_WeekBoundary(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.Local)

	tests := []struct {
		name    string
		age     int64
		wantNil bool
	}{
		{name: "just now", age: 0},
		{name: "one second inside the window", age: SecondsInWeek - 1},
		{name: "exactly one week", age: SecondsInWeek},
		{name: "one second past the window", age: SecondsInWeek + 1, wantNil: true},
		{name: "a year ago", age: 365 * 24 * 3600, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromUnix(now.Unix() - tt.age)
			got := d.FormatTimeAt(now)
			if tt.wantNil {
				assert.Empty(t, got)
				return
			}
			assert.Regexp(t, clockPattern, got)
		})
	}
}

func TestFormatTimeAt_PadsMinutes(t *testing.T) {
	at := time.Date(2024, 1, 2, 9, 5, 0, 0, time.Local)
	d := FromTime(at)

	assert.Equal(t, "9:05", d.FormatTimeAt(at))
}

func TestFormatDate(t *testing.T) {
	d := FromTime(time.Date(2023, 11, 7, 22, 0, 0, 0, time.Local))
	assert.Equal(t, "2023-11-07", d.FormatDate())
}

func TestFormatDateTimeAt(t *testing.T) {
	at := time.Date(2023, 11, 7, 13, 45, 0, 0, time.Local)
	d := FromTime(at)

	assert.Equal(t, "2023-11-07 @ 13:45", d.FormatDateTimeAt(at))
	assert.Equal(t, "2023-11-07", d.FormatDateTimeAt(at.Add(30*24*time.Hour)))
}

func TestOrderingAndEquality(t *testing.T) {
	a := FromUnix(100)
	b := FromUnix(200)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(FromUnix(100)))
	assert.Equal(t, a, FromUnix(100))
}

func TestJSON(t *testing.T) {
	d := FromUnix(1_700_000_000)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"epoch_time":1700000000}`, string(b))

	var back TimeDate
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &back))
}

func TestNow(t *testing.T) {
	before := time.Now().Unix()
	d := Now()
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, d.Unix(), before)
	assert.LessOrEqual(t, d.Unix(), after)
}
