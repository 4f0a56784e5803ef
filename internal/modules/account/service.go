package account

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"crmportal/internal/database"
	"crmportal/internal/domain"

	"gorm.io/gorm"
)

const minUsernameLen = 3

type Service struct {
	admins    AdminRepository
	customers CustomerRepository
}

func NewService(admins AdminRepository, customers CustomerRepository) *Service {
	return &Service{admins: admins, customers: customers}
}

func (s *Service) Get(ctx context.Context, p domain.Principal) (*Profile, error) {
	switch {
	case p.IsAdmin():
		a, err := s.admins.GetByID(ctx, p.AdminID)
		if err != nil {
			return nil, notFound(err)
		}
		return &Profile{Kind: p.Kind, Admin: a}, nil
	case p.IsCustomer():
		c, err := s.customers.GetByID(ctx, p.CustomerID)
		if err != nil {
			return nil, notFound(err)
		}
		return &Profile{Kind: p.Kind, Customer: c}, nil
	default:
		return nil, ErrProfileNotFound
	}
}

// Update applies a partial update to the role record behind p. Email is
// never touched.
func (s *Service) Update(ctx context.Context, p domain.Principal, req UpdateRequest) (*Profile, error) {
	current, err := s.Get(ctx, p)
	if err != nil {
		return nil, err
	}

	if a := current.Admin; a != nil {
		if err := assignRequired(&a.Username, req.Username, minUsernameLen); err != nil {
			return nil, err
		}
		assign(&a.Phone, req.Phone)
		if err := s.admins.UpdateProfile(ctx, a); err != nil {
			if database.IsUniqueViolation(err) {
				return nil, ErrUsernameTaken
			}
			return nil, err
		}
		return current, nil
	}

	c := current.Customer
	if err := assignRequired(&c.FirstName, req.FirstName, 1); err != nil {
		return nil, err
	}
	if err := assignRequired(&c.LastName, req.LastName, 1); err != nil {
		return nil, err
	}
	assign(&c.Phone, req.Phone)
	assign(&c.Address, req.Address)
	assign(&c.City, req.City)
	assign(&c.State, req.State)
	assign(&c.Country, req.Country)
	assign(&c.ZipCode, req.ZipCode)
	if err := s.customers.UpdateProfile(ctx, c); err != nil {
		return nil, err
	}
	return current, nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// assignRequired is assign for columns that must stay filled: the trimmed
// value needs at least minLen characters.
func assignRequired(dst *string, v *string, minLen int) error {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if utf8.RuneCountInString(trimmed) < minLen {
		return ErrBlankField
	}
	*dst = trimmed
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}
