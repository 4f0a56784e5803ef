package account

import "crmportal/internal/domain"

// UpdateRequest carries the editable fields of either role. Fields the
// resolved role cannot edit are ignored; nil fields keep their value.
type UpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=50"`
	State     *string `json:"state" validate:"omitempty,max=50"`
	Country   *string `json:"country" validate:"omitempty,max=50"`
	ZipCode   *string `json:"zip_code" validate:"omitempty,max=20"`
}

// Profile is the settings view; exactly one of Admin and Customer is set.
type Profile struct {
	Kind     domain.PrincipalKind  `json:"kind"`
	Admin    *domain.Administrator `json:"admin,omitempty"`
	Customer *domain.Customer      `json:"customer,omitempty"`
}
