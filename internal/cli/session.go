package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/planner/internal/clock"
	"github.com/roach88/planner/internal/codec"
	"github.com/roach88/planner/internal/config"
	"github.com/roach88/planner/internal/durable"
	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/planner"
	"github.com/roach88/planner/internal/schema"
	"github.com/roach88/planner/internal/store"
)

// session is the state one command invocation works on: the opened
// database, the hydrated event list and the clock. store is nil when
// RootOptions.Backend replaced the database.
type session struct {
	store  *store.Store
	list   *planner.List
	clock  clock.Clock
	logger *slog.Logger
}

// openSession loads configuration, opens the database and hydrates the
// event list. Failures are reported through formatter and returned as
// command errors.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, "invalid configuration", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	// Validate already resolved both; the errors cannot recur here.
	level, _ := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	clk := opts.Clock
	if clk == nil {
		loc, _ := cfg.Location()
		clk = clock.System{Location: loc}
	}

	sch, err := schema.Default()
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to load event schema", err)
	}

	var (
		st      *store.Store
		backend durable.Backend = opts.Backend
	)
	if backend == nil {
		logger.Debug("opening database", "path", cfg.Database)
		st, err = store.Open(cfg.Database)
		if err != nil {
			return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to open database", err)
		}
		backend = st
	}

	list := planner.Open(ctx, backend, codec.New(sch), planner.Options{
		Key:    cfg.Key,
		IDs:    opts.IDs,
		Logger: logger,
	})
	logger.Debug("events loaded", "key", cfg.Key, "count", list.Len())

	return &session{store: st, list: list, clock: clk, logger: logger}, nil
}

// now returns the session's current instant.
func (s *session) now() time.Time {
	return s.clock.Now()
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

// writeFailed reports an in-memory mutation whose write-through failed. A
// draft the list refused is reported as a validation error instead.
func writeFailed(formatter *OutputFormatter, what string, err error) error {
	if errors.Is(err, event.ErrInvalidDraft) {
		return formatter.Fail(ExitCommandError, ErrCodeValidation, "invalid event", err)
	}
	return formatter.Fail(ExitFailure, ErrCodeWriteFailed, fmt.Sprintf("%s but could not be saved", what), err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
