package domain

import "time"

// PrincipalKind tags the resolved role behind a session.
type PrincipalKind string

const (
	PrincipalAdmin     PrincipalKind = "admin"
	PrincipalCustomer  PrincipalKind = "customer"
	PrincipalAnonymous PrincipalKind = "unknown"
)

// Principal is Admin(id) | Customer(id) | Anonymous. Exactly one of AdminID
// and CustomerID is set for the first two kinds, neither for Anonymous.
type Principal struct {
	Kind       PrincipalKind `json:"kind"`
	AccountID  int64         `json:"account_id"`
	Email      string        `json:"email"`
	AdminID    int64         `json:"admin_id,omitempty"`
	CustomerID int64         `json:"customer_id,omitempty"`
}

func AdminPrincipal(accountID int64, email string, adminID int64) Principal {
	return Principal{Kind: PrincipalAdmin, AccountID: accountID, Email: email, AdminID: adminID}
}

func CustomerPrincipal(accountID int64, email string, customerID int64) Principal {
	return Principal{Kind: PrincipalCustomer, AccountID: accountID, Email: email, CustomerID: customerID}
}

func AnonymousPrincipal(accountID int64, email string) Principal {
	return Principal{Kind: PrincipalAnonymous, AccountID: accountID, Email: email}
}

func (p Principal) IsAdmin() bool    { return p.Kind == PrincipalAdmin }
func (p Principal) IsCustomer() bool { return p.Kind == PrincipalCustomer }

// Is reports whether the principal is one of kinds.
func (p Principal) Is(kinds ...PrincipalKind) bool {
	for _, k := range kinds {
		if p.Kind == k {
			return true
		}
	}
	return false
}

// Identity is what an authenticated request knows before role resolution.
type Identity struct {
	AccountID int64
	Email     string
	SessionID string
	ExpiresAt time.Time
}
