// Package services orchestrates the dashboard dataset: loading raw rows
// through the configured source, normalizing them, and deriving filtered
// views, aggregates and overdue reports on demand.
package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"financas/internal/core"
	"financas/internal/rows"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// LoadErrorMessage is the single user-visible message for an upstream fetch
// failure. Per-record coercion problems never surface; only the whole-fetch
// failure does, and only once.
const LoadErrorMessage = "Falha ao carregar os dados da planilha."

// AlertPublisher receives an overdue summary after each successful refresh
// that finds overdue records. A nil publisher disables alerting.
type AlertPublisher interface {
	PublishOverdueAlert(ctx context.Context, alert OverdueAlert) error
}

// OverdueAlert summarizes the overdue subset of a freshly loaded dataset.
type OverdueAlert struct {
	Count       int
	Clients     []string
	MaxDaysLate int
	Total       decimal.Decimal
}

type (
	// FilterOptions are the distinct values present in the full dataset,
	// used by the presentation layer to build filter controls.
	FilterOptions struct {
		Clients  []string
		Statuses []string
		Years    []int
	}

	// View is the derived state for one filter combination: the filtered
	// records plus everything computed from them. It is recomputed from
	// scratch on every request and never cached.
	View struct {
		Records     []core.Record
		Aggregates  core.Aggregates
		Overdue     []core.OverdueRecord
		Options     FilterOptions
		LoadError   string
		GeneratedAt time.Time
	}
)

// DashboardService owns the canonical record collection and serves derived
// views of it. The collection is immutable between refreshes.
type DashboardService struct {
	source  rows.Source
	aliases core.AliasTable
	alerts  AlertPublisher
	now     func() time.Time

	group     singleflight.Group
	requested atomic.Uint64

	mu      sync.Mutex
	records []core.Record
	loadErr string
	applied uint64
}

func NewDashboardService(source rows.Source, aliases core.AliasTable, alerts AlertPublisher) *DashboardService {
	return &DashboardService{
		source:  source,
		aliases: aliases,
		alerts:  alerts,
		now:     time.Now,
	}
}

type loadResult struct {
	records []core.Record
	err     error
}

// Refresh fetches and normalizes the dataset. Concurrent triggers collapse
// into one upstream fetch; completions are ordered by generation so a slow
// fetch can never overwrite data from a newer one. On failure the collection
// is replaced by an explicit empty one and LoadErrorMessage is queued for
// the next view, so the pipeline never runs on undefined state.
func (s *DashboardService) Refresh(ctx context.Context) error {
	gen := s.requested.Add(1)
	v, _, _ := s.group.Do("refresh", func() (any, error) {
		return s.load(ctx, gen), nil
	})
	return v.(loadResult).err
}

func (s *DashboardService) load(ctx context.Context, gen uint64) loadResult {
	var res loadResult
	grid, err := s.source.Fetch(ctx)
	if err != nil {
		res.err = err
	} else {
		res.records = core.NormalizeGrid(grid, s.aliases)
	}

	s.mu.Lock()
	if gen < s.applied {
		s.mu.Unlock()
		slog.WarnContext(ctx, "Discarding stale dataset load", "generation", gen, "applied", s.applied)
		return res
	}
	s.applied = gen
	if res.err != nil {
		s.records = nil
		s.loadErr = LoadErrorMessage
	} else {
		s.records = res.records
		s.loadErr = ""
	}
	s.mu.Unlock()

	if res.err != nil {
		slog.ErrorContext(ctx, "Dataset load failed, continuing with empty collection",
			"error", res.err, "generation", gen)
		return res
	}

	slog.InfoContext(ctx, "Dataset loaded", "records", len(res.records), "generation", gen)
	s.publishOverdueAlert(ctx, res.records)
	return res
}

// View derives the filtered view for one filter state. A queued load error
// is surfaced on the first dashboard view that observes it and then cleared;
// secondary consumers (CSV export) read the dataset without consuming it.
func (s *DashboardService) View(filter core.FilterState) View {
	return s.buildView(filter, true)
}

func (s *DashboardService) buildView(filter core.FilterState, consumeLoadErr bool) View {
	now := s.now()

	s.mu.Lock()
	records := append([]core.Record(nil), s.records...)
	loadErr := s.loadErr
	if consumeLoadErr {
		s.loadErr = ""
	}
	s.mu.Unlock()

	filtered := core.FilterRecords(records, filter, now)
	return View{
		Records:     filtered,
		Aggregates:  core.Aggregate(filtered),
		Overdue:     core.DetectOverdue(filtered, now),
		Options:     filterOptions(records),
		LoadError:   loadErr,
		GeneratedAt: now,
	}
}

func (s *DashboardService) publishOverdueAlert(ctx context.Context, records []core.Record) {
	if s.alerts == nil {
		return
	}
	overdue := core.DetectOverdue(records, s.now())
	if len(overdue) == 0 {
		return
	}

	alert := OverdueAlert{Count: len(overdue), Total: decimal.Zero}
	seen := map[string]bool{}
	for _, rec := range overdue {
		if !seen[rec.Client] {
			seen[rec.Client] = true
			alert.Clients = append(alert.Clients, rec.Client)
		}
		if rec.DaysLate > alert.MaxDaysLate {
			alert.MaxDaysLate = rec.DaysLate
		}
		alert.Total = alert.Total.Add(rec.Amount)
	}

	if err := s.alerts.PublishOverdueAlert(ctx, alert); err != nil {
		// Alerting is best-effort; a broker outage must not fail a refresh.
		slog.ErrorContext(ctx, "Failed to publish overdue alert", "error", err, "count", alert.Count)
	}
}

func filterOptions(records []core.Record) FilterOptions {
	var opts FilterOptions
	clients := map[string]bool{}
	statuses := map[string]bool{}
	years := map[int]bool{}
	for _, rec := range records {
		if rec.Client != "" && !clients[rec.Client] {
			clients[rec.Client] = true
			opts.Clients = append(opts.Clients, rec.Client)
		}
		status := strings.TrimSpace(rec.Status)
		if status != "" && !statuses[strings.ToLower(status)] {
			statuses[strings.ToLower(status)] = true
			opts.Statuses = append(opts.Statuses, status)
		}
		if anchor := rec.AnchorDate(); !anchor.IsEmpty() && !years[anchor.Year()] {
			years[anchor.Year()] = true
			opts.Years = append(opts.Years, anchor.Year())
		}
	}
	sort.Strings(opts.Clients)
	sort.Strings(opts.Statuses)
	sort.Ints(opts.Years)
	return opts
}
