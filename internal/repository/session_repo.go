package repository

import (
	"context"
	"time"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

// SessionRepository provides DB access for sign-in sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

// DeleteStale removes sessions that expired before now or were revoked before
// revokedBefore.
func (r *SessionRepository) DeleteStale(ctx context.Context, now, revokedBefore time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, revokedBefore).
		Delete(&domain.Session{})
	return tx.RowsAffected, tx.Error
}
