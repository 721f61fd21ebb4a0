package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/planner/internal/codec"
	"github.com/roach88/planner/internal/config"
	"github.com/roach88/planner/internal/durable"
	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/planner"
	"github.com/roach88/planner/internal/schema"
	"github.com/roach88/planner/internal/store"
	"github.com/roach88/planner/internal/testutil"
)

// shell runs planner commands against a temporary database with a pinned
// clock (2025-06-01 10:00 UTC) and sequential ids. Setting backend runs
// them against it instead of the database.
type shell struct {
	t       *testing.T
	db      string
	clock   *testutil.FixedClock
	ids     *testutil.SequentialIDs
	backend durable.Backend
	stderr  bytes.Buffer
}

func newShell(t *testing.T) *shell {
	t.Helper()
	for _, key := range []string{config.EnvDatabase, config.EnvKey, config.EnvTimezone, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	return &shell{
		t:     t,
		db:    filepath.Join(t.TempDir(), "planner.db"),
		clock: testutil.At(2025, time.June, 1, 10, 0, time.UTC),
		ids:   testutil.NewSequentialIDs(""),
	}
}

// run executes one command line and returns its stdout.
func (s *shell) run(args ...string) (string, error) {
	s.t.Helper()
	opts := &RootOptions{Clock: s.clock, IDs: s.ids, Backend: s.backend}
	cmd := NewRootCommandWithOptions(opts)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&s.stderr)
	cmd.SetArgs(append([]string{"--db", s.db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// mustRun executes a command line that is expected to succeed.
func (s *shell) mustRun(args ...string) string {
	s.t.Helper()
	out, err := s.run(args...)
	require.NoError(s.t, err, "planner %v\n%s", args, out)
	return out
}

// seed stores drafts directly, bypassing form validation so past events
// can be created.
func (s *shell) seed(drafts ...event.Draft) {
	s.t.Helper()
	ctx := context.Background()

	st, err := store.Open(s.db)
	require.NoError(s.t, err)
	defer st.Close()

	sch, err := schema.Default()
	require.NoError(s.t, err)

	list := planner.Open(ctx, st, codec.New(sch), planner.Options{IDs: s.ids})
	for _, d := range drafts {
		_, err := list.Add(ctx, d)
		require.NoError(s.t, err)
	}
}

// stored reads the collection as persisted.
func (s *shell) stored() []event.Event {
	s.t.Helper()
	st, err := store.Open(s.db)
	require.NoError(s.t, err)
	defer st.Close()

	sch, err := schema.Default()
	require.NoError(s.t, err)

	data, ok, err := st.Get(context.Background(), planner.DefaultKey)
	require.NoError(s.t, err)
	if !ok {
		return nil
	}
	events, err := codec.New(sch).Decode(data)
	require.NoError(s.t, err)
	return events
}

func newDraft(title, date, tod, location, description string, c event.Category) event.Draft {
	d, err := event.ParseDate(date)
	if err != nil {
		panic(err)
	}
	tm, err := event.ParseTimeOfDay(tod)
	if err != nil {
		panic(err)
	}
	return event.Draft{
		Title:       title,
		Date:        d,
		Time:        tm,
		Location:    location,
		Description: description,
		Category:    c,
	}
}

// seedAgenda stores four events, ids evt-1 to evt-4:
//
//	evt-1 Standup  2025-01-10 09:00 work (past)
//	evt-2 Concert  2025-06-20 20:00 entertainment
//	evt-3 Lunch    2025-06-01 12:30 personal
//	evt-4 Dentist  2025-06-01 08:00 personal (earlier today, still upcoming)
func (s *shell) seedAgenda() {
	s.seed(
		newDraft("Standup", "2025-01-10", "09:00", "Room A", "daily", event.Work),
		newDraft("Concert", "2025-06-20", "20:00", "Arena", "", event.Entertainment),
		newDraft("Lunch", "2025-06-01", "12:30", "Cafe", "", event.Personal),
		newDraft("Dentist", "2025-06-01", "08:00", "Clinic", "bring x-rays", event.Personal),
	)
}

func assertGolden(t *testing.T, name, actual string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(actual))
}
