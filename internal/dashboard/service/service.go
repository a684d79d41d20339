// Package service orchestrates the dashboard build: fetch the record sets
// and the processor snapshot concurrently, normalize, aggregate, run the
// attention rules, and cache the result.
package service

import (
	"context"
	"time"

	"opsboard_backend/internal/dashboard/aggregate"
	"opsboard_backend/internal/dashboard/attention"
	"opsboard_backend/internal/dashboard/cache"
	"opsboard_backend/internal/dashboard/domain"
	"opsboard_backend/internal/dashboard/normalize"
	"opsboard_backend/internal/dashboard/period"
	"opsboard_backend/internal/dashboard/ports"
	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/internal/events"
	"opsboard_backend/platform/apperr"
	"opsboard_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Service builds dashboard snapshots.
type Service struct {
	records     ports.RecordSource
	payments    ports.PaymentsReader // nil when the processor is not configured
	snapshots   *cache.Snapshot
	engine      *attention.Engine
	bus         events.Bus
	recentLimit int
	log         *logger.Logger
	now         func() time.Time
}

// New creates a dashboard service.
func New(
	records ports.RecordSource,
	payments ports.PaymentsReader,
	snapshots *cache.Snapshot,
	engine *attention.Engine,
	bus events.Bus,
	recentLimit int,
	log *logger.Logger,
) *Service {
	return &Service{
		records:     records,
		payments:    payments,
		snapshots:   snapshots,
		engine:      engine,
		bus:         bus,
		recentLimit: recentLimit,
		log:         log,
		now:         time.Now,
	}
}

// Dashboard returns the full snapshot. A cached snapshot is served unless
// the caller bypasses the cache or injects a reference instant; injected
// instants never read or write the cache since they describe a different
// moment than the one cached.
func (s *Service) Dashboard(ctx context.Context, at *time.Time, bypassCache bool) (transport.Dashboard, error) {
	injected := at != nil

	if !injected && !bypassCache {
		if dash, ok := s.snapshots.Get(ctx); ok {
			return dash, nil
		}
	}

	now := s.now()
	if injected {
		now = *at
	}

	dash, err := s.build(ctx, now)
	if err != nil {
		return transport.Dashboard{}, err
	}

	if !injected {
		s.snapshots.Set(ctx, dash)
	}

	return dash, nil
}

// Refresh rebuilds the snapshot, replaces the cache, and publishes the
// refresh events. The scheduler calls this on its interval.
func (s *Service) Refresh(ctx context.Context) (transport.Dashboard, error) {
	started := s.now()

	snap, err := s.fetch(ctx, started)
	if err != nil {
		return transport.Dashboard{}, err
	}

	dash := s.assemble(snap, started)
	s.snapshots.Set(ctx, dash)

	s.log.RefreshCompleted(
		len(snap.engagements),
		len(snap.jobs),
		len(snap.technicians),
		len(snap.messages),
		len(dash.Attention),
		float64(time.Since(started).Milliseconds()),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.DashboardRefreshed{
			BaseEvent:   events.NewBaseEvent(),
			GeneratedAt: dash.Metrics.GeneratedAt,
			LeadCount:   dash.Metrics.TotalActualLeads,
			AlertCount:  len(dash.Attention),
		})
		if actionable := actionableItems(dash.Attention); len(actionable) > 0 {
			s.bus.Publish(ctx, events.AttentionAlertsRaised{
				BaseEvent:   events.NewBaseEvent(),
				Items:       actionable,
				GeneratedAt: dash.Metrics.GeneratedAt,
			})
		}
	}

	return dash, nil
}

func (s *Service) build(ctx context.Context, now time.Time) (transport.Dashboard, error) {
	snap, err := s.fetch(ctx, now)
	if err != nil {
		return transport.Dashboard{}, err
	}
	return s.assemble(snap, now), nil
}

// assemble runs the pure half of the build: aggregation plus the rule
// catalog over an already fetched snapshot.
func (s *Service) assemble(snap recordSnapshot, now time.Time) transport.Dashboard {
	windows := period.At(now)
	metrics := aggregate.Compute(aggregate.Input{
		Engagements: snap.engagements,
		Jobs:        snap.jobs,
		Technicians: snap.technicians,
		Messages:    snap.messages,
		Summary:     snap.summary,
		RecentLimit: s.recentLimit,
	}, windows)

	items := s.engine.Evaluate(snap.engagements, snap.jobs, snap.summary, now)

	return transport.Dashboard{Metrics: metrics, Attention: items}
}

type recordSnapshot struct {
	engagements []domain.Engagement
	jobs        []domain.Job
	technicians []domain.Technician
	messages    []domain.Message
	summary     *domain.PaymentSummary
}

// fetch loads the four record sets and the processor snapshot concurrently.
// Any record fetch failure fails the whole build; a processor failure only
// degrades it to internal ledger figures.
func (s *Service) fetch(ctx context.Context, now time.Time) (recordSnapshot, error) {
	var snap recordSnapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := s.records.Engagements(gctx)
		if err != nil {
			s.log.FetchError("engagements", err)
			return apperr.Wrap(apperr.KindInternal, "failed to load engagement records", err)
		}
		snap.engagements = make([]domain.Engagement, 0, len(recs))
		for _, rec := range recs {
			snap.engagements = append(snap.engagements, normalize.Engagement(rec, now))
		}
		return nil
	})

	g.Go(func() error {
		recs, err := s.records.Jobs(gctx)
		if err != nil {
			s.log.FetchError("jobs", err)
			return apperr.Wrap(apperr.KindInternal, "failed to load job records", err)
		}
		snap.jobs = make([]domain.Job, 0, len(recs))
		for _, rec := range recs {
			snap.jobs = append(snap.jobs, normalize.Job(rec))
		}
		return nil
	})

	g.Go(func() error {
		recs, err := s.records.Technicians(gctx)
		if err != nil {
			s.log.FetchError("technicians", err)
			return apperr.Wrap(apperr.KindInternal, "failed to load technician records", err)
		}
		snap.technicians = make([]domain.Technician, 0, len(recs))
		for _, rec := range recs {
			snap.technicians = append(snap.technicians, normalize.Technician(rec))
		}
		return nil
	})

	g.Go(func() error {
		recs, err := s.records.Messages(gctx)
		if err != nil {
			s.log.FetchError("messages", err)
			return apperr.Wrap(apperr.KindInternal, "failed to load message records", err)
		}
		snap.messages = make([]domain.Message, 0, len(recs))
		for _, rec := range recs {
			snap.messages = append(snap.messages, normalize.Message(rec, now))
		}
		return nil
	})

	if s.payments != nil {
		g.Go(func() error {
			summary, err := s.payments.Summary(gctx)
			if err != nil {
				s.log.StripeUnavailable(err)
				return nil
			}
			snap.summary = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return recordSnapshot{}, err
	}

	return snap, nil
}

func actionableItems(items []transport.AttentionItem) []transport.AttentionItem {
	actionable := make([]transport.AttentionItem, 0, len(items))
	for _, it := range items {
		if it.Rule == attention.RuleAllClear {
			continue
		}
		actionable = append(actionable, it)
	}
	return actionable
}
