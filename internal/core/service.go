package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/clientview/internal/logging"
	"github.com/JonMunkholm/clientview/internal/metrics"
)

// Service is the entry point used by the web server and the CLI.
// Every call works on the snapshot that is current when it starts.
type Service struct {
	repo   *Repository
	policy Policy
	sizes  PageSizes
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPolicy sets the report band policy.
func WithPolicy(p Policy) ServiceOption {
	return func(s *Service) { s.policy = p }
}

// WithPageSizes sets the permitted page sizes.
func WithPageSizes(sizes PageSizes) ServiceOption {
	return func(s *Service) {
		if len(sizes) > 0 {
			s.sizes = sizes
		}
	}
}

// WithNow replaces time.Now for age computation and report timestamps.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over repo.
func NewService(repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		policy: DefaultPolicy(),
		sizes:  DefaultPageSizes,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() *Snapshot {
	return s.repo.Snapshot()
}

// Reload fetches the sheets again and swaps the snapshot.
func (s *Service) Reload(ctx context.Context) *Snapshot {
	return s.repo.Reload(ctx)
}

// PageSizes returns the permitted page sizes.
func (s *Service) PageSizes() PageSizes {
	return s.sizes
}

// Policy returns the report band policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// Now returns the service clock used for ages.
func (s *Service) Now() time.Time {
	return s.now()
}

// NewQuery returns the initial list view for this service's page sizes.
func (s *Service) NewQuery() Query {
	return NewQuery(s.sizes)
}

// Branches returns every branch in sheet order.
func (s *Service) Branches() []Branch {
	return s.repo.Snapshot().Branches
}

// Clients runs q against the current snapshot.
func (s *Service) Clients(ctx context.Context, q Query) (PageResult[Client], error) {
	if err := ctx.Err(); err != nil {
		return PageResult[Client]{}, err
	}
	if err := s.sizes.Check(q.PageSize); err != nil {
		return PageResult[Client]{}, err
	}
	if _, err := ParseSortKey(string(q.SortBy)); err != nil {
		return PageResult[Client]{}, err
	}
	if _, err := ParseSortOrder(string(q.Order)); err != nil {
		return PageResult[Client]{}, err
	}

	result := q.Run(s.repo.Snapshot().Clients, s.now())
	metrics.ObserveQuery("clients")
	logging.FromContext(ctx).Debug("clients query",
		"search", q.Filter.Search,
		"sort", q.SortBy,
		"order", q.Order,
		"page", result.Page,
		"total_items", result.TotalItems,
	)
	return result, nil
}

// ClientDetail returns one client with its accounts.
func (s *Service) ClientDetail(ctx context.Context, id string) (ClientDetail, error) {
	if err := ctx.Err(); err != nil {
		return ClientDetail{}, err
	}

	snap := s.repo.Snapshot()
	c, ok := snap.FindClient(id)
	if !ok {
		return ClientDetail{}, fmt.Errorf("client %q: %w", id, ErrClientNotFound)
	}

	metrics.ObserveQuery("detail")
	return Detail(c, IndexAccounts(snap.Accounts), s.now()), nil
}

// Report aggregates every client of the current snapshot.
func (s *Service) Report(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	snap := s.repo.Snapshot()
	metrics.ObserveQuery("report")
	return Aggregate(snap.Clients, snap.Accounts, s.policy, s.now()), nil
}
