package domain

import "time"

// Account is the sign-in identity. Role records (administrator, customer,
// employee) link to it by email and account id.
type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Session is a revocable sign-in referenced by the jti of an access token.
type Session struct {
	ID        string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	AccountID int64      `json:"account_id" gorm:"index;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	UserAgent *string    `json:"-"`
	IP        *string    `json:"-" gorm:"column:ip"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Session) TableName() string { return "sessions" }

// Active reports whether the session can still authenticate requests at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
