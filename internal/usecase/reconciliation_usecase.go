package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Reconciliation run outcomes used as metric labels.
const (
	ReconcileConsistent   = "consistent"
	ReconcileInconsistent = "inconsistent"
	ReconcileFailed       = "failed"
)

// ReconciliationRecorder receives the result of each reconciliation run.
type ReconciliationRecorder interface {
	ObserveReconciliation(outcome string, drifting int)
}

// ReconciliationReport summarizes one pass over every account.
type ReconciliationReport struct {
	CheckedAt          time.Time
	Discrepancies      []ReconciliationResult
	TotalAccounts      int
	ReconciledAccounts int
}

// Consistent reports whether no account drifted.
func (r *ReconciliationReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// ReconciliationUseCase periodically recomputes balances from transactions.
type ReconciliationUseCase struct {
	checker  ConsistencyChecker
	recorder ReconciliationRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(checker ConsistencyChecker, recorder ReconciliationRecorder, logger zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		checker:  checker,
		recorder: recorder,
		logger:   logger.With().Str("component", "reconciler").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GenerateReport reconciles every account once.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.checker.Reconcile(ctx)
	if err != nil {
		uc.record(ReconcileFailed, 0)
		return nil, err
	}

	report := &ReconciliationReport{
		CheckedAt:     uc.now(),
		TotalAccounts: len(results),
	}

	for _, r := range results {
		if r.IsReconciled() {
			report.ReconciledAccounts++
			continue
		}
		report.Discrepancies = append(report.Discrepancies, r)
	}

	if report.Consistent() {
		uc.record(ReconcileConsistent, 0)
	} else {
		uc.record(ReconcileInconsistent, len(report.Discrepancies))
	}

	return report, nil
}

// Run reconciles immediately and then every interval until ctx is cancelled.
func (uc *ReconciliationUseCase) Run(ctx context.Context, interval time.Duration) error {
	uc.logger.Info().Dur("interval", interval).Msg("reconciler started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info().Msg("reconciler shutting down")
			return ctx.Err()
		case <-ticker.C:
			uc.runOnce(ctx)
		}
	}
}

func (uc *ReconciliationUseCase) runOnce(ctx context.Context) {
	report, err := uc.GenerateReport(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		uc.logger.Error().Err(err).Msg("reconciliation failed")
		return
	}

	if report.Consistent() {
		uc.logger.Debug().Int("accounts", report.TotalAccounts).Msg("ledger consistent")
		return
	}

	for _, d := range report.Discrepancies {
		uc.logger.Error().
			Str("account_id", d.AccountID).
			Int64("recorded_balance", int64(d.RecordedBalance)).
			Int64("calculated_balance", int64(d.CalculatedBalance)).
			Msg("balance drift detected")
	}
}

func (uc *ReconciliationUseCase) record(outcome string, drifting int) {
	if uc.recorder != nil {
		uc.recorder.ObserveReconciliation(outcome, drifting)
	}
}
