package repository

import (
	"context"

	"crmportal/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Administrator) error {
	a.Email = normalizeEmail(a.Email)
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	var a domain.Administrator
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	var a domain.Administrator
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateProfile writes the editable administrator fields.
func (r *AdminRepository) UpdateProfile(ctx context.Context, a *domain.Administrator) error {
	return r.db.WithContext(ctx).Model(&domain.Administrator{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"username": a.Username,
			"phone":    a.Phone,
		}).Error
}

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	c.Email = normalizeEmail(c.Email)
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateProfile writes the editable customer fields. Email stays as is.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"first_name": c.FirstName,
			"last_name":  c.LastName,
			"phone":      c.Phone,
			"address":    c.Address,
			"city":       c.City,
			"state":      c.State,
			"country":    c.Country,
			"zip_code":   c.ZipCode,
		}).Error
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&out).Error
	return out, err
}
