package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/aticket/internal/domain/user"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/aticket/internal/infrastructure/persistence/models"
	"github.com/orris-inc/aticket/internal/shared/db"
)

type UserDirectory struct {
	db *gorm.DB
}

var _ user.Directory = (*UserDirectory)(nil)

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (r *UserDirectory) Lookup(ctx context.Context, ids ...uint) (map[uint]*user.User, error) {
	out := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var list []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to look up users: %w", err)
	}
	for i := range list {
		out[list[i].ID] = mappers.UserToDomain(&list[i])
	}
	return out, nil
}

func (r *UserDirectory) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return mappers.UserToDomain(&model), nil
}

func (r *UserDirectory) Upsert(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	var stored models.UserModel
	if err := tx.Where("username = ?", model.Username).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload user: %w", err)
	}
	if u.ID() == 0 {
		u.SetID(stored.ID)
	}
	return nil
}
