package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/aticket/internal/domain/sequence"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/biztime"
	"github.com/orris-inc/aticket/internal/shared/db"
	"github.com/orris-inc/aticket/internal/shared/logger"
)

// ProtocolCounterStore implements sequence.Store on the protocol_counters
// table. Each partition is one row; Reserve locks it, bumps last_number and
// returns the new value without committing, so the number belongs to the
// caller's transaction.
type ProtocolCounterStore struct {
	db     *gorm.DB
	txMgr  *db.TransactionManager
	logger logger.Interface
}

var _ sequence.Store = (*ProtocolCounterStore)(nil)

func NewProtocolCounterStore(gdb *gorm.DB, log logger.Interface) *ProtocolCounterStore {
	return &ProtocolCounterStore{
		db:     gdb,
		txMgr:  db.NewTransactionManager(gdb),
		logger: log,
	}
}

func (s *ProtocolCounterStore) Reserve(ctx context.Context, key sequence.PartitionKey) (int64, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	var next int64
	err := s.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, s.db)

		// Make sure the row exists before locking it. Inserting first keeps
		// MySQL from taking gap locks on a missing row, which deadlocks two
		// transactions opening the same new week.
		seed := &models.ProtocolCounterModel{
			DeptCode:   key.Department.String(),
			ISOYear:    key.ISOYear,
			ISOWeek:    key.ISOWeek,
			LastNumber: 0,
			UpdatedAt:  biztime.NowUTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dept_code"}, {Name: "iso_year"}, {Name: "iso_week"}},
			DoNothing: true,
		}).Create(seed).Error; err != nil {
			return fmt.Errorf("failed to initialize counter: %w", err)
		}

		var row models.ProtocolCounterModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("dept_code = ? AND iso_year = ? AND iso_week = ?", key.Department.String(), key.ISOYear, key.ISOWeek).
			First(&row).Error; err != nil {
			return fmt.Errorf("failed to lock counter: %w", err)
		}

		result := tx.Model(&models.ProtocolCounterModel{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"last_number": gorm.Expr("last_number + ?", 1),
				"updated_at":  biztime.NowUTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to increment counter: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return fmt.Errorf("failed to increment counter: %d rows affected", result.RowsAffected)
		}

		next = row.LastNumber + 1
		return nil
	})
	if err != nil {
		s.logger.Errorw("protocol number reservation failed",
			"partition", key.String(),
			"error", err,
		)
		return 0, fmt.Errorf("reserve %s: %w", key, err)
	}

	s.logger.Debugw("protocol number reserved",
		"partition", key.String(),
		"number", next,
	)
	return next, nil
}

func (s *ProtocolCounterStore) Current(ctx context.Context, key sequence.PartitionKey) (int64, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	var row models.ProtocolCounterModel
	err := db.GetTxFromContext(ctx, s.db).
		Where("dept_code = ? AND iso_year = ? AND iso_week = ?", key.Department.String(), key.ISOYear, key.ISOWeek).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return row.LastNumber, nil
}
