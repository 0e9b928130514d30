package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvermaat/stock-trade-tracker/internal/analytics"
	"github.com/mvermaat/stock-trade-tracker/internal/model"
	"github.com/mvermaat/stock-trade-tracker/internal/repository"
)

// AnalyticsService runs the accounting core over stored trades. All derived
// figures are recomputed from the full chronological history on every call;
// nothing is incrementally patched, so edits and deletions are always
// reflected correctly.
type AnalyticsService struct {
	tradeService   *TradeService
	accountService *AccountService
	snapshotRepo   *repository.SnapshotRepository
	unrealizedRate float64
}

// NewAnalyticsService creates a new AnalyticsService. unrealizedRate is the
// flat placeholder rate applied to open cost basis while no price feed exists.
func NewAnalyticsService(
	tradeService *TradeService,
	accountService *AccountService,
	snapshotRepo *repository.SnapshotRepository,
	unrealizedRate float64,
) *AnalyticsService {
	return &AnalyticsService{
		tradeService:   tradeService,
		accountService: accountService,
		snapshotRepo:   snapshotRepo,
		unrealizedRate: unrealizedRate,
	}
}

// GetPositions folds the chronological trade history into one position per
// instrument, optionally scoped to a single account.
func (s *AnalyticsService) GetPositions(accountID string) (map[string]analytics.Position, error) {
	trades, err := s.tradeService.loadTrades(accountID)
	if err != nil {
		return nil, err
	}
	return analytics.Positions(trades), nil
}

// GetSummary computes the per-instrument P&L snapshot over the full history,
// optionally scoped to a single account.
func (s *AnalyticsService) GetSummary(accountID string) (analytics.Summary, error) {
	trades, err := s.tradeService.loadTrades(accountID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(trades, s.unrealizedRate), nil
}

// GetMonthly computes the per-calendar-month realized P&L breakdown. The fold
// always runs over the complete history (realized P&L is path-dependent);
// the start and end bounds only filter which realized events are reported.
func (s *AnalyticsService) GetMonthly(accountID string, start, end time.Time) ([]analytics.MonthlyPnL, error) {
	summary, err := s.GetSummary(accountID)
	if err != nil {
		return nil, err
	}
	events := analytics.FilterEvents(summary.Events, start, end)
	return analytics.MonthlyBreakdown(events), nil
}

// GetOutcomes computes win/loss statistics over closed instruments.
func (s *AnalyticsService) GetOutcomes(accountID string) (analytics.OutcomeStats, error) {
	summary, err := s.GetSummary(accountID)
	if err != nil {
		return analytics.OutcomeStats{}, err
	}
	return analytics.Outcomes(summary), nil
}

// Overview is the dashboard payload: positions, P&L summary and outcome
// statistics plus the account list, computed in one call.
type Overview struct {
	Accounts  []model.Account               `json:"accounts"`
	Positions map[string]analytics.Position `json:"positions"`
	Summary   analytics.Summary             `json:"summary"`
	Outcomes  analytics.OutcomeStats        `json:"outcomes"`
	Monthly   []analytics.MonthlyPnL        `json:"monthly"`
}

// GetOverview assembles the full dashboard in one response. Trades and
// accounts come from independent queries, so they are loaded concurrently.
func (s *AnalyticsService) GetOverview(ctx context.Context, accountID string) (Overview, error) {
	var trades []model.Trade
	var accounts []model.Account

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trades, err = s.tradeService.loadTrades(accountID)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountService.GetAccounts(false)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	summary := analytics.Summarize(trades, s.unrealizedRate)

	return Overview{
		Accounts:  accounts,
		Positions: analytics.Positions(trades),
		Summary:   summary,
		Outcomes:  analytics.Outcomes(summary),
		Monthly:   analytics.MonthlyBreakdown(summary.Events),
	}, nil
}

// GetHistory reads materialized daily analytics rows for the inclusive date
// range. History comes from the snapshot table, not a live fold, so it is
// only as fresh as the last snapshot run.
func (s *AnalyticsService) GetHistory(start, end time.Time) ([]model.SnapshotHistory, error) {
	return s.snapshotRepo.GetHistory(start, end)
}

// RebuildSnapshot recomputes today's analytics from the full trade history
// and materializes one row per instrument. Called nightly by the scheduler
// and on demand through the admin endpoint. Returns the number of rows
// written.
func (s *AnalyticsService) RebuildSnapshot(ctx context.Context, date time.Time) (int, error) {
	trades, err := s.tradeService.loadTrades("")
	if err != nil {
		return 0, fmt.Errorf("failed to load trades for snapshot: %w", err)
	}

	summary := analytics.Summarize(trades, s.unrealizedRate)

	snapshots := make([]model.AnalyticsSnapshot, 0, len(summary.Instruments))
	for _, pnl := range summary.Instruments {
		snapshots = append(snapshots, model.AnalyticsSnapshot{
			ID:            uuid.New().String(),
			SnapshotDate:  date,
			Instrument:    pnl.Instrument,
			OpenQty:       pnl.OpenQty,
			AvgBuyPrice:   pnl.AvgBuyPrice,
			InvestedValue: pnl.OpenQty * pnl.AvgBuyPrice,
			RealizedPnL:   pnl.Realized,
			UnrealizedPnL: pnl.Unrealized,
			TotalPnL:      pnl.Total,
		})
	}

	if err := s.snapshotRepo.UpsertSnapshots(ctx, date, snapshots); err != nil {
		return 0, err
	}
	return len(snapshots), nil
}
