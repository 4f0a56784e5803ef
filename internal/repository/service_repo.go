package repository

import (
	"context"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type ServiceFilter struct {
	PortalID   *int64
	ActiveOnly bool
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns services ordered by name.
func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Model(&domain.Service{})
	if f.PortalID != nil {
		q = q.Where("portal_id = ?", *f.PortalID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Service
	err := q.Order("name ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Model(&domain.Service{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":        s.Name,
			"description": s.Description,
			"price":       s.Price,
			"is_active":   s.IsActive,
		}).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Service{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceRepository) CountByPortal(ctx context.Context, portalID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Service{}).Where("portal_id = ?", portalID).Count(&n).Error
	return n, err
}

// CountByAdmin counts services attached to portals the admin owns.
func (r *ServiceRepository) CountByAdmin(ctx context.Context, adminID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Service{}).
		Joins("JOIN portals ON portals.id = services.portal_id").
		Where("portals.admin_id = ?", adminID).
		Count(&n).Error
	return n, err
}
