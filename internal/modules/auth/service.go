package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"crmportal/internal/database"
	"crmportal/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication
type Service struct {
	accounts   AccountRepository
	sessions   SessionRepository
	portals    PortalLookup
	resolver   PrincipalResolver
	tokens     TokenService
	notifier   SessionNotifier
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(
	accounts AccountRepository,
	sessions SessionRepository,
	portals PortalLookup,
	resolver PrincipalResolver,
	tokens TokenService,
	notifier SessionNotifier,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		accounts:   accounts,
		sessions:   sessions,
		portals:    portals,
		resolver:   resolver,
		tokens:     tokens,
		notifier:   notifier,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// SignUp creates an administrator or employee account. No session is issued;
// the client signs in afterwards.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	email := normalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	acc := &domain.Account{Email: email, PasswordHash: hash}

	var profile any
	switch req.UserType {
	case UserTypeEmployee:
		emp := &domain.Employee{
			FirstName:  strings.TrimSpace(req.FirstName),
			LastName:   strings.TrimSpace(req.LastName),
			Email:      email,
			Phone:      strings.TrimSpace(req.Phone),
			Position:   strings.TrimSpace(req.Position),
			Department: strings.TrimSpace(req.Department),
		}
		err = s.accounts.CreateWithRole(ctx, acc, emp)
		profile = emp
	default:
		username := strings.TrimSpace(req.Username)
		if username == "" {
			username = emailLocalPart(email)
		}
		admin := &domain.Administrator{
			Username: username,
			Email:    email,
			Role:     domain.AdminRoleAdmin,
			Phone:    strings.TrimSpace(req.Phone),
		}
		err = s.accounts.CreateWithRole(ctx, acc, admin)
		profile = admin
	}
	if err != nil {
		return nil, s.mapCreateError(ctx, email, err)
	}

	userType := req.UserType
	if userType == "" {
		userType = UserTypeAdmin
	}
	return &SignUpResult{Account: toAccountView(acc), UserType: userType, Profile: profile}, nil
}

func (s *Service) CustomerSignUp(ctx context.Context, req CustomerSignUpRequest) (*SignUpResult, error) {
	email := normalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	if req.PortalID != nil {
		if _, err := s.portals.GetByID(ctx, *req.PortalID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPortalNotFound
			}
			return nil, err
		}
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{Email: email, PasswordHash: hash}
	customer := &domain.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Country:   strings.TrimSpace(req.Country),
		ZipCode:   strings.TrimSpace(req.ZipCode),
		PortalID:  req.PortalID,
	}
	if err := s.accounts.CreateWithRole(ctx, acc, customer); err != nil {
		return nil, s.mapCreateError(ctx, email, err)
	}

	return &SignUpResult{Account: toAccountView(acc), UserType: "customer", Profile: customer}, nil
}

// Login checks the password, then the role. A principal of the wrong kind
// gets ErrWrongRole and no session is created.
func (s *Service) Login(ctx context.Context, req LoginRequest, want domain.PrincipalKind, meta ClientMeta) (*LoginResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	p, err := s.resolver.Resolve(ctx, domain.Identity{AccountID: acc.ID, Email: acc.Email})
	if err != nil {
		return nil, err
	}
	if p.Kind != want {
		return nil, ErrWrongRole
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: acc.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		UserAgent: optional(meta.UserAgent),
		IP:        optional(meta.IP),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(acc.ID, acc.Email, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	view := SessionView{ID: session.ID, AccountID: acc.ID, Email: acc.Email, ExpiresAt: session.ExpiresAt}
	s.notifier.SignedIn(acc.ID, view)

	return &LoginResult{Token: token, Session: view, Principal: p}, nil
}

// Logout revokes the session and forgets its cached principal.
func (s *Service) Logout(ctx context.Context, id domain.Identity) error {
	if err := s.sessions.Revoke(ctx, id.SessionID); err != nil {
		return err
	}
	s.resolver.Invalidate(ctx, id.SessionID)
	s.notifier.SignedOut(id.AccountID, id.SessionID)
	return nil
}

func (s *Service) Me(ctx context.Context, id domain.Identity, p domain.Principal) (*MeResponse, error) {
	acc, err := s.accounts.GetByID(ctx, id.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	return &MeResponse{
		Account:   toAccountView(acc),
		Principal: p,
		Session:   SessionView{ID: id.SessionID, AccountID: acc.ID, Email: acc.Email, ExpiresAt: id.ExpiresAt},
	}, nil
}

// Authenticate turns a raw access token into the live session it refers to.
func (s *Service) Authenticate(ctx context.Context, token string) (*SessionView, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if session.AccountID != claims.AccountID || !session.Active(s.now()) {
		return nil, ErrSessionInvalid
	}

	return &SessionView{ID: session.ID, AccountID: session.AccountID, Email: claims.Email, ExpiresAt: session.ExpiresAt}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailAlreadyExists
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// mapCreateError tells a lost email race apart from a username clash.
func (s *Service) mapCreateError(ctx context.Context, email string, err error) error {
	if !database.IsUniqueViolation(err) {
		return err
	}
	if _, lookupErr := s.accounts.GetByEmail(ctx, email); lookupErr == nil {
		return ErrEmailAlreadyExists
	}
	return ErrUsernameTaken
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
