package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/metrics"
)

// ResetTokenTTL is how long a password reset link stays valid.
const ResetTokenTTL = 72 * time.Hour

const resetMailSubject = "Change Password"

// AuthService implements registration, login, logout and password reset on
// top of the caller's session.
type AuthService struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.ResetTokenStore
	mail        ports.MailQueue
	audit       ports.AuthEventRepository
	frontendURL string
	log         zerolog.Logger

	newToken func() string
	now      func() time.Time
}

// NewAuthService wires the auth use cases. audit may be nil to disable the
// audit trail.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.ResetTokenStore,
	mail ports.MailQueue,
	audit ports.AuthEventRepository,
	frontendURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		mail:        mail,
		audit:       audit,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
		newToken:    uuid.NewString,
		now:         time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, sess ports.Session, in ports.RegisterInput) (*ports.UserResponse, error) {
	if fe := validateRegister(in); fe != nil {
		s.count("register", "field_error")
		return fieldError(fe.Field, fe.Message), nil
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.count("register", "error")
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		s.count("register", "field_error")
		return fieldError("username", "username already taken"), nil
	case errors.Is(err, domain.ErrDuplicateEmail):
		s.count("register", "field_error")
		return fieldError("email", "email already taken"), nil
	case err != nil:
		s.count("register", "error")
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to register user")
		return fieldError("username", "something went wrong"), nil
	}

	sess.SetUserID(user.ID)
	s.count("register", "success")
	s.record(ctx, domain.AuthEvent{Type: domain.AuthEventRegistered, UserID: user.ID, Identifier: user.Username, Success: true})
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return &ports.UserResponse{User: user}, nil
}

// Login resolves the account by email when the identifier contains "@" and
// by username otherwise.
func (s *AuthService) Login(ctx context.Context, sess ports.Session, usernameOrEmail, password string) (*ports.UserResponse, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(usernameOrEmail, "@") {
		user, err = s.users.FindByEmail(ctx, usernameOrEmail)
	} else {
		user, err = s.users.FindByUsername(ctx, usernameOrEmail)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		s.count("login", "field_error")
		s.record(ctx, domain.AuthEvent{Type: domain.AuthEventLogin, Identifier: usernameOrEmail, Reason: "unknown user"})
		return fieldError("usernameOrEmail", "user does not exist"), nil
	}
	if err != nil {
		s.count("login", "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.count("login", "error")
		return nil, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		s.count("login", "field_error")
		s.record(ctx, domain.AuthEvent{Type: domain.AuthEventLogin, UserID: user.ID, Identifier: usernameOrEmail, Reason: "wrong password"})
		return fieldError("password", "User/Password wrong"), nil
	}

	sess.SetUserID(user.ID)
	s.count("login", "success")
	s.record(ctx, domain.AuthEvent{Type: domain.AuthEventLogin, UserID: user.ID, Identifier: usernameOrEmail, Success: true})

	return &ports.UserResponse{User: user}, nil
}

// Logout destroys the session. It reports false when the store refused.
func (s *AuthService) Logout(ctx context.Context, sess ports.Session) bool {
	userID, _ := sess.UserID()

	if err := sess.Destroy(ctx); err != nil {
		s.count("logout", "error")
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to destroy session")
		return false
	}

	s.count("logout", "success")
	s.record(ctx, domain.AuthEvent{Type: domain.AuthEventLogout, UserID: userID, Success: true})
	return true
}

// Me returns the session's user, or nil when the session is anonymous or its
// user no longer exists.
func (s *AuthService) Me(ctx context.Context, sess ports.Session) (*domain.User, error) {
	id, ok := sess.UserID()
	if !ok {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// ForgotPassword issues a reset token and queues the reset link for delivery.
// It returns false, storing nothing, when no account has the email. A queueing
// failure is logged; the issued token stays valid.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.count("forgot_password", "field_error")
		s.record(ctx, domain.AuthEvent{Type: domain.AuthEventResetRequested, Identifier: email, Reason: "unknown email"})
		return false, nil
	}
	if err != nil {
		s.count("forgot_password", "error")
		return false, fmt.Errorf("forgot password: %w", err)
	}

	token := s.newToken()
	if err := s.tokens.Save(ctx, token, user.ID, ResetTokenTTL); err != nil {
		s.count("forgot_password", "error")
		return false, fmt.Errorf("forgot password: %w", err)
	}

	link := s.frontendURL + "/change-password/" + token
	msg := ports.MailMessage{
		To:      user.Email,
		Subject: resetMailSubject,
		HTML:    fmt.Sprintf(`<a href="%s">Reset Password</a>`, html.EscapeString(link)),
	}
	if err := s.mail.Enqueue(ctx, msg); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to queue password reset email")
	}

	s.count("forgot_password", "success")
	s.record(ctx, domain.AuthEvent{Type: domain.AuthEventResetRequested, UserID: user.ID, Identifier: email, Success: true})
	return true, nil
}

// ChangePassword redeems a reset token. The token is consumed on lookup, so a
// second attempt with the same token always fails. On success the caller's
// session is bound to the token's user.
func (s *AuthService) ChangePassword(ctx context.Context, sess ports.Session, token, newPassword string) (*ports.UserResponse, error) {
	if !validPassword(newPassword) {
		s.count("change_password", "field_error")
		return fieldError("newPassword", "min length 3"), nil
	}

	userID, ok, err := s.tokens.Take(ctx, token)
	if err != nil {
		s.count("change_password", "error")
		return nil, fmt.Errorf("change password: %w", err)
	}
	if !ok {
		s.count("change_password", "field_error")
		return fieldError("token", "token not valid"), nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.count("change_password", "field_error")
		return fieldError("token", "user no longer exists"), nil
	}
	if err != nil {
		s.count("change_password", "error")
		return nil, fmt.Errorf("change password: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.count("change_password", "error")
		return nil, fmt.Errorf("change password: hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.count("change_password", "field_error")
			return fieldError("token", "user no longer exists"), nil
		}
		s.count("change_password", "error")
		return nil, fmt.Errorf("change password: %w", err)
	}
	user.PasswordHash = hash

	sess.SetUserID(user.ID)
	s.count("change_password", "success")
	s.record(ctx, domain.AuthEvent{Type: domain.AuthEventPasswordChanged, UserID: user.ID, Identifier: user.Username, Success: true})

	return &ports.UserResponse{User: user}, nil
}

// record writes to the audit trail. Failures are logged and never surface.
func (s *AuthService) record(ctx context.Context, ev domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	ev.OccurredAt = s.now().UTC()
	if err := s.audit.Insert(ctx, &ev); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		s.log.Warn().Err(err).Str("event", string(ev.Type)).Int64("user_id", ev.UserID).Msg("failed to insert audit event")
	}
}

func (s *AuthService) count(event, result string) {
	metrics.AuthEventsTotal.WithLabelValues(event, result).Inc()
}

func fieldError(field, message string) *ports.UserResponse {
	return &ports.UserResponse{Errors: []domain.FieldError{domain.NewFieldError(field, message)}}
}
