package repository

import (
	"context"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

type PortalRepository struct {
	db *gorm.DB
}

func NewPortalRepository(db *gorm.DB) *PortalRepository {
	return &PortalRepository{db: db}
}

// PortalRef is the public {id, name} pair of the portal directory.
type PortalRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r *PortalRepository) Create(ctx context.Context, p *domain.Portal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PortalRepository) GetByID(ctx context.Context, id int64) (*domain.Portal, error) {
	var p domain.Portal
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByAdmin returns the admin's portals, newest first.
func (r *PortalRepository) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Portal, error) {
	var out []domain.Portal
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *PortalRepository) CountByAdmin(ctx context.Context, adminID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Portal{}).Where("admin_id = ?", adminID).Count(&n).Error
	return n, err
}

func (r *PortalRepository) Directory(ctx context.Context) ([]PortalRef, error) {
	var out []PortalRef
	err := r.db.WithContext(ctx).Model(&domain.Portal{}).
		Select("id, name").
		Order("name ASC, id ASC").
		Scan(&out).Error
	return out, err
}

// Rename updates the name of a portal owned by adminID. It returns
// gorm.ErrRecordNotFound when no owned row matched.
func (r *PortalRepository) Rename(ctx context.Context, id, adminID int64, name string) error {
	tx := r.db.WithContext(ctx).Model(&domain.Portal{}).
		Where("id = ? AND admin_id = ?", id, adminID).
		Update("name", name)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PortalRepository) Delete(ctx context.Context, id, adminID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&domain.Portal{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
