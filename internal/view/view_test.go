package view

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/planner/internal/event"
)

var today = time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)

func ev(id, date, tm string, cat event.Category) event.Event {
	d, err := event.ParseDate(date)
	if err != nil {
		panic(err)
	}
	t, err := event.ParseTimeOfDay(tm)
	if err != nil {
		panic(err)
	}
	return event.Event{ID: id, Title: "t" + id, Date: d, Time: t, Location: "x", Category: cat}
}

func ids(events []event.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter_StandupScenario(t *testing.T) {
	events := []event.Event{ev("1", "2025-01-10", "09:00", event.Work)}

	assert.Equal(t, []string{"1"}, ids(Filter(events, Past, AnyCategory, today)))
	assert.Empty(t, Filter(events, Upcoming, AnyCategory, today))
}

func TestFilter_AllSortsAscending(t *testing.T) {
	events := []event.Event{
		ev("c", "2025-06-02", "08:00", event.Work),
		ev("a", "2025-05-01", "23:00", event.Personal),
		ev("b", "2025-06-01", "07:30", event.Entertainment),
		ev("d", "2025-06-01", "07:29", event.Work),
	}

	got := Filter(events, All, AnyCategory, today)
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids(got))
}

func TestFilter_TodayIsUpcomingRegardlessOfTime(t *testing.T) {
	events := []event.Event{
		ev("early", "2025-06-01", "00:00", event.Work),
		ev("yesterday", "2025-05-31", "23:59", event.Work),
	}

	assert.Equal(t, []string{"early"}, ids(Filter(events, Upcoming, AnyCategory, today)))
	assert.Equal(t, []string{"yesterday"}, ids(Filter(events, Past, AnyCategory, today)))
}

func TestFilter_Category(t *testing.T) {
	events := []event.Event{
		ev("w", "2025-06-03", "09:00", event.Work),
		ev("p", "2025-06-02", "09:00", event.Personal),
		ev("e", "2025-05-01", "09:00", event.Entertainment),
	}

	assert.Equal(t, []string{"w"}, ids(Filter(events, All, OnlyCategory(event.Work), today)))
	assert.Equal(t, []string{"p"}, ids(Filter(events, Upcoming, OnlyCategory(event.Personal), today)))
	assert.Empty(t, Filter(events, Upcoming, OnlyCategory(event.Entertainment), today))
}

func TestFilter_StableForEqualInstants(t *testing.T) {
	events := []event.Event{
		ev("x", "2025-06-05", "10:00", event.Work),
		ev("y", "2025-06-05", "10:00", event.Personal),
		ev("z", "2025-06-05", "10:00", event.Work),
		ev("first", "2025-06-04", "10:00", event.Work),
	}

	assert.Equal(t, []string{"first", "x", "y", "z"}, ids(Filter(events, All, AnyCategory, today)))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	events := []event.Event{
		ev("b", "2025-06-05", "10:00", event.Work),
		ev("a", "2025-06-04", "10:00", event.Work),
	}
	snapshot := append([]event.Event(nil), events...)

	_ = Filter(events, All, AnyCategory, today)
	assert.Equal(t, snapshot, events)
}

func TestFilter_UsesNowLocation(t *testing.T) {
	// 00:30 on June 1st in UTC+3 is still May 31st in UTC.
	plus3 := time.FixedZone("plus3", 3*60*60)
	now := time.Date(2025, time.June, 1, 0, 30, 0, 0, plus3)
	events := []event.Event{ev("1", "2025-06-01", "00:10", event.Work)}

	assert.Equal(t, []string{"1"}, ids(Filter(events, Upcoming, AnyCategory, now)))
}

func TestFilter_PastAndUpcomingPartitionAll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cats := event.Categories()

	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		events := make([]event.Event, n)
		for i := range events {
			day := today.AddDate(0, 0, rng.Intn(21)-10)
			events[i] = event.Event{
				ID:       string(rune('A'+i%26)) + string(rune('0'+i/26)),
				Title:    "t",
				Date:     event.DateOf(day),
				Time:     event.TimeOfDay{Hour: rng.Intn(24), Minute: rng.Intn(60)},
				Location: "x",
				Category: cats[rng.Intn(len(cats))],
			}
		}

		all := Filter(events, All, AnyCategory, today)
		past := Filter(events, Past, AnyCategory, today)
		upcoming := Filter(events, Upcoming, AnyCategory, today)

		require.Len(t, all, n)
		assert.Len(t, past, n-len(upcoming))
		assert.ElementsMatch(t, ids(all), append(ids(past), ids(upcoming)...))

		seen := make(map[string]bool)
		for _, id := range ids(past) {
			seen[id] = true
		}
		for _, id := range ids(upcoming) {
			assert.False(t, seen[id], "event %s in both past and upcoming", id)
		}

		for i := 1; i < len(all); i++ {
			prev := all[i-1].Instant(time.UTC)
			cur := all[i].Instant(time.UTC)
			assert.False(t, cur.Before(prev), "not sorted at %d", i)
		}
	}
}

func TestParseTimeFilter(t *testing.T) {
	for _, in := range []string{"all", "upcoming", "past"} {
		f, err := ParseTimeFilter(in)
		require.NoError(t, err)
		assert.Equal(t, TimeFilter(in), f)
	}
	_, err := ParseTimeFilter("future")
	assert.ErrorIs(t, err, ErrInvalidTimeFilter)
}

func TestParseCategoryFilter(t *testing.T) {
	f, err := ParseCategoryFilter("all")
	require.NoError(t, err)
	assert.Equal(t, AnyCategory, f)
	assert.Equal(t, "all", f.String())

	f, err = ParseCategoryFilter("work")
	require.NoError(t, err)
	assert.Equal(t, OnlyCategory(event.Work), f)
	assert.Equal(t, "work", f.String())

	_, err = ParseCategoryFilter("meeting")
	assert.ErrorIs(t, err, ErrInvalidCategoryFilter)
}
