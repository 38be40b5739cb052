package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drift kinds
const (
	// DriftTransactions means the balance disagrees with the sum of the transaction log
	DriftTransactions = "transactions"
	// DriftTotals means the balance disagrees with the running totals on the Point itself
	DriftTotals = "totals"
)

// Drift describes a Point record whose balance disagrees with its ledger
type Drift struct {
	UserID   primitive.ObjectID `json:"userId"`
	Kind     string             `json:"kind"`
	Balance  int                `json:"balance"`
	Expected int                `json:"expected"`
}

// ReconcileReport summarises one reconciliation pass
type ReconcileReport struct {
	Checked      int       `json:"checked"`
	Busy         int       `json:"busy"`
	MirrorsFixed int       `json:"mirrorsFixed"`
	Orphans      int       `json:"orphans"`
	Drifts       []Drift   `json:"drifts"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// LedgerReconciler compares every Point balance with the sum of its
// transactions and resyncs the balance mirror on the user document.
type LedgerReconciler struct {
	userRepo  repositories.UserRepository
	pointRepo repositories.PointRepository
	txRepo    repositories.PointTransactionRepository
	timeout   time.Duration
}

// NewLedgerReconciler creates a new LedgerReconciler
func NewLedgerReconciler(
	userRepo repositories.UserRepository,
	pointRepo repositories.PointRepository,
	txRepo repositories.PointTransactionRepository,
	timeout time.Duration,
) *LedgerReconciler {
	return &LedgerReconciler{
		userRepo:  userRepo,
		pointRepo: pointRepo,
		txRepo:    txRepo,
		timeout:   timeout,
	}
}

// Run performs one reconciliation pass. Drift is reported, never corrected:
// the Point document is authoritative for the balance. A Point that changes
// while its transactions are being totalled is counted as busy and skipped.
func (r *LedgerReconciler) Run(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{Drifts: []Drift{}, StartedAt: time.Now()}

	snapshots, err := r.pointRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load point records: %w", err)
	}

	for _, snapshot := range snapshots {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		totals, err := r.txRepo.Totals(ctx, snapshot.UserID)
		if err != nil {
			logger.Error("Failed to total transactions", "userId", snapshot.UserID, "error", err)
			continue
		}
		point, err := r.pointRepo.FindByUserID(ctx, snapshot.UserID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			logger.Error("Failed to reload point record", "userId", snapshot.UserID, "error", err)
			continue
		}
		if point.Version != snapshot.Version {
			report.Busy++
			logger.Info("Point record changed during reconciliation", "userId", point.UserID)
			continue
		}

		report.Drifts = append(report.Drifts, checkDrift(point, totals)...)

		fixed, err := r.syncMirror(ctx, point)
		if errors.Is(err, repositories.ErrNotFound) {
			report.Orphans++
			logger.Warn("Point record has no user", "userId", point.UserID)
			continue
		}
		if err != nil {
			logger.Error("Failed to sync balance mirror", "userId", point.UserID, "error", err)
			continue
		}
		if fixed {
			report.MirrorsFixed++
		}
	}

	report.FinishedAt = time.Now()
	logger.Info("Ledger reconciliation finished",
		"checked", report.Checked,
		"busy", report.Busy,
		"drifts", len(report.Drifts),
		"mirrorsFixed", report.MirrorsFixed,
		"orphans", report.Orphans)
	return report, nil
}

// checkDrift tests the balance against the transaction log and against the
// running totals kept on the Point
func checkDrift(point *models.Point, totals *models.TransactionTotals) []Drift {
	var drifts []Drift
	if expected := totals.Purchased - totals.Used + totals.Refunded; expected != point.Balance {
		drifts = append(drifts, Drift{UserID: point.UserID, Kind: DriftTransactions, Balance: point.Balance, Expected: expected})
		logger.Warn("Ledger drift detected",
			"userId", point.UserID,
			"balance", point.Balance,
			"expected", expected,
			"purchased", totals.Purchased,
			"used", totals.Used,
			"refunded", totals.Refunded)
	}
	if expected := point.ExpectedBalance(); expected != point.Balance {
		drifts = append(drifts, Drift{UserID: point.UserID, Kind: DriftTotals, Balance: point.Balance, Expected: expected})
		logger.Warn("Point totals disagree with balance",
			"userId", point.UserID,
			"balance", point.Balance,
			"expected", expected)
	}
	return drifts
}

func (r *LedgerReconciler) syncMirror(ctx context.Context, point *models.Point) (bool, error) {
	user, err := r.userRepo.FindByID(ctx, point.UserID)
	if err != nil {
		return false, err
	}
	if user.PointsBalance == point.Balance || user.PointsVersion >= point.Version {
		return false, nil
	}
	if err := r.userRepo.SetPointsBalance(ctx, point.UserID, point.Balance, point.Version); err != nil {
		return false, err
	}
	return true, nil
}

// RunScheduled is the cron entry point
func (r *LedgerReconciler) RunScheduled() {
	runWithRecovery("ReconcileLedger", func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.Run(ctx); err != nil {
			logger.Error("Ledger reconciliation failed", "error", err)
		}
	})
}

// runWithRecovery wraps job execution with panic recovery
func runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Job panicked", "job", jobName, "panic", rec)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
