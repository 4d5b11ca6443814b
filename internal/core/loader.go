package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/clientview/internal/logging"
	"github.com/JonMunkholm/clientview/internal/metrics"
)

// Sources locates the three sheets.
type Sources struct {
	Branches string
	Clients  string
	Accounts string
}

// Loader builds snapshots from the three sheets.
type Loader struct {
	fetcher  Fetcher
	sources  Sources
	timeout  time.Duration
	maxBytes int64
	now      func() time.Time
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFetchTimeout bounds each sheet fetch. Zero means no timeout.
func WithFetchTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.timeout = d }
}

// WithMaxSheetBytes caps each sheet body.
func WithMaxSheetBytes(n int64) LoaderOption {
	return func(l *Loader) { l.maxBytes = n }
}

// WithClock replaces time.Now for LoadedAt.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// NewLoader creates a loader reading sources through fetcher.
func NewLoader(fetcher Fetcher, sources Sources, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:  fetcher,
		sources:  sources,
		maxBytes: DefaultMaxSheetBytes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Sources returns the configured sheet locations.
func (l *Loader) Sources() Sources {
	return l.sources
}

// Load fetches every sheet and returns a new snapshot.
//
// Branches are loaded first so that clients and accounts, fetched
// concurrently afterwards, can resolve their branch codes. A sheet that
// fails leaves its collection empty and adds a SheetError; Load itself
// never fails.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	start := time.Now()
	snap := &Snapshot{ID: uuid.New()}
	logger := logging.WithFields(ctx,
		"snapshot_id", snap.ID,
		"trigger", TriggerFromContext(ctx),
	)

	branchRecs, branchErr := l.fetchSheet(ctx, SheetBranches, l.sources.Branches, BranchColumns)
	snap.Branches = NormalizeBranches(branchRecs)
	idx := NewBranchIndex(snap.Branches)

	// Errors are kept per sheet so one failed sheet never cancels the other.
	var (
		clientRecs, accountRecs []Record
		clientErr, accountErr   error
		g                       errgroup.Group
	)
	g.Go(func() error {
		clientRecs, clientErr = l.fetchSheet(ctx, SheetClients, l.sources.Clients, ClientColumns)
		return nil
	})
	g.Go(func() error {
		accountRecs, accountErr = l.fetchSheet(ctx, SheetAccounts, l.sources.Accounts, AccountColumns)
		return nil
	})
	_ = g.Wait()

	snap.Clients = NormalizeClients(clientRecs, idx)
	snap.Accounts = NormalizeAccounts(accountRecs, idx)

	for _, r := range []struct {
		sheet  Sheet
		source string
		err    error
	}{
		{SheetBranches, l.sources.Branches, branchErr},
		{SheetClients, l.sources.Clients, clientErr},
		{SheetAccounts, l.sources.Accounts, accountErr},
	} {
		if r.err == nil {
			continue
		}
		snap.Errors = append(snap.Errors, SheetError{Sheet: r.sheet, Source: r.source, Err: r.err})
		logger.Error("sheet load failed",
			"sheet", r.sheet,
			"source", r.source,
			"error", r.err,
		)
	}

	snap.LoadedAt = l.now()
	logger.Info("snapshot loaded",
		"branches", len(snap.Branches),
		"clients", len(snap.Clients),
		"accounts", len(snap.Accounts),
		"failed_sheets", len(snap.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap
}

// fetchSheet fetches and decodes one sheet. The header row is always
// consumed and replaced by columns.
func (l *Loader) fetchSheet(ctx context.Context, sheet Sheet, source string, columns []string) ([]Record, error) {
	start := time.Now()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	recs, n, err := l.readSheet(ctx, source, columns)
	metrics.ObserveSheet(string(sheet), len(recs), n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("sheet fetched",
		"sheet", sheet,
		"rows", len(recs),
		"bytes", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return recs, nil
}

func (l *Loader) readSheet(ctx context.Context, source string, columns []string) ([]Record, int64, error) {
	body, err := l.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, 0, err
	}
	defer body.Close()

	text, n, err := ReadSheet(body, l.maxBytes)
	if err != nil {
		return nil, n, fmt.Errorf("read %s: %w", source, err)
	}
	return Decode(text, columns), n, nil
}
