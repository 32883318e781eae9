package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-expandlist/expandlist"
	"github.com/forestrie/go-expandlist/expandstate"
	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type replayOptions struct {
	diff          bool
	events        bool
	stateDir      string
	blobContainer string
	listID        string

	reg prometheus.Registerer
}

func newReplayCmd(reg prometheus.Registerer) *cobra.Command {
	opts := &replayOptions{reg: reg}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Apply each step of a scenario and print the visible rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), cmd.OutOrStdout(), sc, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff of the rows after each step")
	cmd.Flags().BoolVar(&opts.events, "events", false, "print the change events reported for each step")
	cmd.Flags().StringVar(&opts.stateDir, "state-dir", "", "badger directory holding the saved expanded groups")
	cmd.Flags().StringVar(&opts.blobContainer, "blob-container", "",
		"save the expanded groups in this container of the development blob emulator")
	cmd.Flags().StringVar(&opts.listID, "list-id", "", "list id the state is saved under, overrides the scenario")
	cmd.MarkFlagsMutuallyExclusive("state-dir", "blob-container")
	return cmd
}

// eventLog collects the observer callbacks of one step.
type eventLog struct {
	events []string
}

func (e *eventLog) ItemRangeInserted(start, count int) {
	e.events = append(e.events, fmt.Sprintf("inserted %d+%d", start, count))
}

func (e *eventLog) ItemRangeRemoved(start, count int) {
	e.events = append(e.events, fmt.Sprintf("removed %d+%d", start, count))
}

func (e *eventLog) ItemRangeChanged(start, count int) {
	e.events = append(e.events, fmt.Sprintf("changed %d+%d", start, count))
}

func (e *eventLog) ItemMoved(from, to int) {
	e.events = append(e.events, fmt.Sprintf("moved %d->%d", from, to))
}

func (e *eventLog) DataSetChanged() { e.events = append(e.events, "dataset changed") }

func (e *eventLog) take() []string {
	events := e.events
	e.events = nil
	return events
}

func resolveListID(sc Scenario, flag string) (uuid.UUID, bool, error) {
	s := flag
	if s == "" {
		s = sc.ListID
	}
	if s == "" {
		return uuid.New(), true, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("list id %q: %w", s, err)
	}
	return id, false, nil
}

// openStore returns nil when no persistence was asked for. The store is
// instrumented with opts.reg.
func openStore(log logger.Logger, opts *replayOptions) (expandstate.Store, func() error, error) {
	store, closeStore, err := openBackingStore(log, opts)
	if err != nil || store == nil {
		return nil, closeStore, err
	}
	return expandstate.NewInstrumentedStore(store, opts.reg), closeStore, nil
}

func openBackingStore(log logger.Logger, opts *replayOptions) (expandstate.Store, func() error, error) {
	switch {
	case opts.stateDir != "":
		cfg := expandstate.DefaultConfig()
		cfg.Path = opts.stateDir
		cfg.Log = log
		s, err := expandstate.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case opts.blobContainer != "":
		storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), opts.blobContainer)
		if err != nil {
			return nil, nil, fmt.Errorf("blob emulator: %w", err)
		}
		s, err := expandstate.NewBlobStore(log, storer)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}
	return nil, func() error { return nil }, nil
}

func runReplay(ctx context.Context, out io.Writer, sc Scenario, opts *replayOptions) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Sugar.WithServiceName("expandlist")

	listID, generated, err := resolveListID(sc, opts.listID)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(log, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); err == nil {
			err = cerr
		}
	}()

	var saved []uint32
	if store != nil {
		if generated {
			fmt.Fprintf(out, "list id %s\n", listID)
		}
		st, err := store.Get(ctx, listID)
		switch {
		case err == nil:
			saved = st.Expanded
			fmt.Fprintf(out, "restored %d expanded groups\n", len(saved))
		case errors.Is(err, expandstate.ErrStateNotFound):
		default:
			return err
		}
	}

	p := sc.Provider()
	events := &eventLog{}
	m := expandlist.New(p, events, expandlist.WithLogger(log), expandlist.WithSavedState(saved))

	prev := renderLayout(m, p)
	fmt.Fprintf(out, "== initial\n%s", prev)
	for i, step := range sc.Steps {
		if err := step.Apply(p, m); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		cur := renderLayout(m, p)
		fmt.Fprintf(out, "== step %d: %s\n", i, step)
		if opts.events {
			for _, e := range events.take() {
				fmt.Fprintf(out, "  %s\n", e)
			}
		}
		if !opts.diff {
			fmt.Fprint(out, cur)
			prev = cur
			continue
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(prev),
			B:        difflib.SplitLines(cur),
			FromFile: fmt.Sprintf("step %d", i-1),
			ToFile:   fmt.Sprintf("step %d", i),
			Context:  1,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(out, diff)
		prev = cur
	}

	if store == nil {
		return nil
	}
	st := expandstate.State{
		ListID:   listID,
		Version:  expandstate.StateVersion,
		Expanded: m.SavedState(),
		SavedAt:  time.Now().UnixMilli(),
	}
	if err := store.Put(ctx, st); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %d expanded groups\n", len(st.Expanded))
	return nil
}
