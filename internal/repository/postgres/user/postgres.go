package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userdomain "profile-app-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var record userdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Save(ctx context.Context, record *userdomain.User) error {
	return r.db.WithContext(ctx).Save(record).Error
}
