package audit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/scratchmart/internal/config"
	"github.com/GlebRadaev/scratchmart/internal/domain"
)

//go:generate mockgen -source=audit.go -destination=mock_audit.go -package=audit

const defaultPageSize = 500

type LedgerRepo interface {
	ListUserIDs(ctx context.Context, afterID int64, limit int) ([]int64, error)
	Reconcile(ctx context.Context, userID int64) (domain.Reconciliation, error)
}

// Service periodically checks that every balance equals the sum of its history.
// It only reads and reports.
type Service struct {
	ledgerRepo LedgerRepo
	schedule   string
	location   *time.Location
	workers    int
	pageSize   int
	cron       *cron.Cron
}

func New(cfg *config.Config, ledgerRepo LedgerRepo) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		schedule:   cfg.AuditSchedule,
		location:   cfg.Location(),
		workers:    cfg.AuditWorkers,
		pageSize:   defaultPageSize,
	}
}

// Start registers the audit on its cron schedule. The scheduler stops when ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.location))
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Run(ctx); err != nil {
			zap.L().Error("ledger audit failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("%w: AUDIT_SCHEDULE %q: %w", domain.ErrConfiguration, s.schedule, err)
	}

	s.cron.Start()
	zap.L().Info("Ledger audit scheduled", zap.String("schedule", s.schedule))

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		zap.L().Info("Ledger audit stopped")
	}()
	return nil
}

// Run reconciles every user once and returns the number of inconsistent ledgers.
func (s *Service) Run(ctx context.Context) (int, error) {
	started := time.Now()
	pool := NewWorkerPool(s.workers)
	defer pool.Close()

	var checked, mismatches atomic.Int64
	var afterID int64
	for {
		ids, err := s.ledgerRepo.ListUserIDs(ctx, afterID, s.pageSize)
		if err != nil {
			return int(mismatches.Load()), fmt.Errorf("list users after %d: %w", afterID, err)
		}
		if len(ids) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				return pool.Do(gctx, func() error {
					rec, err := s.ledgerRepo.Reconcile(gctx, id)
					if err != nil {
						return fmt.Errorf("reconcile user %d: %w", id, err)
					}
					checked.Add(1)
					if !rec.Consistent() {
						mismatches.Add(1)
						zap.L().Warn("ledger mismatch",
							zap.Int64("user_id", rec.UserID),
							zap.Int64("balance", rec.Balance),
							zap.Int64("history_sum", rec.HistorySum))
					}
					return nil
				})
			})
		}
		if err := g.Wait(); err != nil {
			return int(mismatches.Load()), err
		}

		afterID = ids[len(ids)-1]
		if len(ids) < s.pageSize {
			break
		}
	}

	zap.L().Info("Ledger audit finished",
		zap.Int64("checked", checked.Load()),
		zap.Int64("mismatches", mismatches.Load()),
		zap.Duration("took", time.Since(started)))
	return int(mismatches.Load()), nil
}
