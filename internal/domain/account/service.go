package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/ident"
	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/internal/platform/store"
	"github.com/clinic/clinic/internal/platform/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email is already registered")
)

// Revoker records logged-out token ids.
type Revoker interface {
	Revoke(jti string, expiresAt time.Time)
}

type Service struct {
	users   UserRepository
	issuer  *auth.Issuer
	revoker Revoker
	logger  zerolog.Logger
	now     func() time.Time

	notificationsChanged func(userID string, enabled bool)
}

func NewService(users UserRepository, issuer *auth.Issuer, revoker Revoker, logger zerolog.Logger) *Service {
	return &Service{
		users:   users,
		issuer:  issuer,
		revoker: revoker,
		logger:  logger.With().Str("component", "account").Logger(),
		now:     time.Now,
	}
}

var _ listview.Preferences = (*Service)(nil)

// Signup creates the user and opens a session for it.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*auth.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:            ident.New(ident.UserPrefix),
		FullName:      req.FullName,
		Email:         req.Email,
		PasswordHash:  hash,
		Theme:         ThemeLight,
		Notifications: true,
		HiddenColumns: map[string]map[string]bool{},
		CreatedAt:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, emailError(err)
	}
	s.logger.Info().Str("user_id", u.ID).Msg("user signed up")
	return s.issuer.Issue(u.ID)
}

// Login checks the credentials. Unknown email and wrong password give the
// same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*auth.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().Msg("login failed: unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		s.logger.Warn().Str("user_id", u.ID).Msg("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	return s.issuer.Issue(u.ID)
}

// Logout revokes the session token until it would have expired.
func (s *Service) Logout(_ context.Context, sess *auth.Session) error {
	if sess == nil || sess.TokenID == "" {
		return auth.ErrInvalidToken
	}
	s.revoker.Revoke(sess.TokenID, sess.ExpiresAt)
	return nil
}

func (s *Service) Current(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req ProfileRequest) (*Profile, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	u, err := s.users.Modify(ctx, userID, func(u *User) error {
		u.FullName = req.FullName
		u.Email = req.Email
		return nil
	})
	if err != nil {
		return nil, emailError(err)
	}
	p := u.Profile()
	return &p, nil
}

// ChangePassword replaces the password hash. On any error the stored user is
// left unchanged.
func (s *Service) ChangePassword(ctx context.Context, userID string, req PasswordRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	_, err := s.users.Modify(ctx, userID, func(u *User) error {
		if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
			return ErrWrongPassword
		}
		if req.NewPassword != req.ConfirmPassword {
			return ErrPasswordMismatch
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *Service) Settings(ctx context.Context, userID string) (*Settings, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := u.Settings()
	return &out, nil
}

func (s *Service) SetTheme(ctx context.Context, userID string, theme Theme) (*Settings, error) {
	req := ThemeRequest{Theme: theme}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	return s.updateSettings(ctx, userID, func(u *User) { u.Theme = theme })
}

func (s *Service) SetNotifications(ctx context.Context, userID string, enabled bool) (*Settings, error) {
	out, err := s.updateSettings(ctx, userID, func(u *User) { u.Notifications = enabled })
	if err != nil {
		return nil, err
	}
	if s.notificationsChanged != nil {
		s.notificationsChanged(userID, enabled)
	}
	return out, nil
}

// OnNotificationsChanged registers fn to run after a user flips the
// notifications setting.
func (s *Service) OnNotificationsChanged(fn func(userID string, enabled bool)) {
	s.notificationsChanged = fn
}

func (s *Service) NotificationsEnabled(ctx context.Context, userID string) (bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.Notifications, nil
}

// HiddenColumns returns the column keys userID has hidden on screen.
func (s *Service) HiddenColumns(ctx context.Context, userID, screen string) (map[string]bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.HiddenColumns[screen], nil
}

// SetColumnVisible records one column toggle. Keys are checked by the
// caller's screen definition.
func (s *Service) SetColumnVisible(ctx context.Context, userID, screen, key string, visible bool) error {
	_, err := s.updateSettings(ctx, userID, func(u *User) {
		if u.HiddenColumns == nil {
			u.HiddenColumns = map[string]map[string]bool{}
		}
		keys := u.HiddenColumns[screen]
		if keys == nil {
			keys = map[string]bool{}
			u.HiddenColumns[screen] = keys
		}
		if visible {
			delete(keys, key)
		} else {
			keys[key] = true
		}
	})
	return err
}

func (s *Service) updateSettings(ctx context.Context, userID string, apply func(*User)) (*Settings, error) {
	u, err := s.users.Modify(ctx, userID, func(u *User) error {
		apply(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := u.Settings()
	return &out, nil
}

func emailError(err error) error {
	if errors.Is(err, store.ErrDuplicateID) {
		return ErrEmailTaken
	}
	return err
}
