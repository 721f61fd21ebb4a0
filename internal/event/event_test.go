package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"work", Work},
		{"personal", Personal},
		{"entertainment", Entertainment},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseCategory_RejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "Work", "WORK", "iş", "holiday", " work"} {
		_, err := ParseCategory(in)
		assert.ErrorIs(t, err, ErrInvalidCategory, "input %q", in)
	}
}

func TestCategory_ZeroValueDoesNotMarshal(t *testing.T) {
	var c Category
	assert.False(t, c.Valid())
	_, err := json.Marshal(c)
	assert.Error(t, err)
}

func TestCategory_UnmarshalJSONRejectsUnknown(t *testing.T) {
	var c Category
	err := json.Unmarshal([]byte(`"meeting"`), &c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 10}, d)
	assert.Equal(t, "2025-01-10", d.String())

	for _, bad := range []string{"", "2025-1-10", "2025-02-30", "10/01/2025", "2025-01-10T09:00"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tm, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, tm)
	assert.Equal(t, "09:05", tm.String())

	for _, bad := range []string{"", "24:00", "12:60", "noon", "12:30:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, "input %q", bad)
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2025, Month: time.June, Day: 1}
	b := Date{Year: 2025, Month: time.June, Day: 2}
	c := Date{Year: 2024, Month: time.December, Day: 31}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, c.Before(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestDateAddYears(t *testing.T) {
	leap := Date{Year: 2024, Month: time.February, Day: 29}
	assert.Equal(t, Date{Year: 2026, Month: time.March, Day: 1}, leap.AddYears(2))

	d := Date{Year: 2025, Month: time.June, Day: 1}
	assert.Equal(t, Date{Year: 2027, Month: time.June, Day: 1}, d.AddYears(2))
}

func TestInstant(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	e := Event{
		Date: Date{Year: 2025, Month: time.January, Day: 10},
		Time: TimeOfDay{Hour: 9, Minute: 30},
	}
	got := e.Instant(loc)
	assert.Equal(t, time.Date(2025, time.January, 10, 9, 30, 0, 0, loc), got)
}

func TestDraftWithIDRoundTrip(t *testing.T) {
	d := Draft{
		Title:    "Standup",
		Date:     Date{Year: 2025, Month: time.January, Day: 10},
		Time:     TimeOfDay{Hour: 9},
		Location: "Room A",
		Category: Work,
	}
	e := d.WithID("1")
	assert.Equal(t, "1", e.ID)
	assert.Equal(t, d, e.Draft())
}

func TestEventJSONShape(t *testing.T) {
	e := Event{
		ID:       "1",
		Title:    "Standup",
		Date:     Date{Year: 2025, Month: time.January, Day: 10},
		Time:     TimeOfDay{Hour: 9},
		Location: "Room A",
		Category: Work,
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","title":"Standup","date":"2025-01-10","time":"09:00","location":"Room A","description":"","category":"work"}`, string(data))

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
}
