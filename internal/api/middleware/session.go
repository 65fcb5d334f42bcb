package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

const sessionKey = "session"

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Store      ports.SessionStore
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
	Logger     zerolog.Logger
}

// session is the request-scoped ports.Session. Nothing reaches the store
// until SaveSession runs or the response is written.
type session struct {
	store ports.SessionStore
	cfg   SessionConfig
	codec cookieCodec

	id        string
	data      domain.SessionData
	dirty     bool
	rotate    bool
	destroyed bool
}

func (s *session) UserID() (int64, bool) {
	return s.data.UserID, s.data.UserID != 0
}

// SetUserID binds the session to a user. An existing session gets a fresh id
// on the next flush.
func (s *session) SetUserID(id int64) {
	s.data.UserID = id
	s.dirty = true
	s.destroyed = false
	if s.id != "" {
		s.rotate = true
	}
}

// Destroy deletes the stored session. The cookie is cleared even when the
// store fails.
func (s *session) Destroy(ctx context.Context) error {
	id := s.id
	s.id = ""
	s.data = domain.SessionData{}
	s.dirty = false
	s.rotate = false
	s.destroyed = true

	if id == "" || s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, id)
}

// CurrentSession returns the session loaded by the Session middleware. Without
// the middleware it returns an anonymous session that is never persisted.
func CurrentSession(c echo.Context) ports.Session {
	if s, ok := c.Get(sessionKey).(*session); ok {
		return s
	}
	return &session{}
}

// SaveSession writes pending session changes and sets the cookie now, so a
// handler can fail the request when the store is unavailable. Without the
// Session middleware it does nothing.
func SaveSession(c echo.Context) error {
	if s, ok := c.Get(sessionKey).(*session); ok {
		return s.flush(c)
	}
	return nil
}

// Session loads the caller's session from the signed cookie. Changes not
// saved by SaveSession are flushed just before the response headers are
// written.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	codec := cookieCodec{secret: []byte(cfg.Secret), ttl: cfg.TTL}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := &session{store: cfg.Store, cfg: cfg, codec: codec}

			if ck, err := c.Cookie(cfg.CookieName); err == nil && ck.Value != "" {
				if sid, err := codec.decode(ck.Value); err == nil {
					data, err := cfg.Store.Load(c.Request().Context(), sid)
					if err != nil {
						return err
					}
					if data != nil {
						sess.id = sid
						sess.data = *data
					}
				}
			}

			c.Set(sessionKey, sess)
			c.Response().Before(func() {
				if err := sess.flush(c); err != nil {
					cfg.Logger.Error().Err(err).Int64("user_id", sess.data.UserID).Msg("failed to save session")
				}
			})

			return next(c)
		}
	}
}

// flush persists a dirty session and sets or clears the cookie. A failed save
// drops the pending change so the cookie is never issued for it.
func (s *session) flush(c echo.Context) error {
	if s.destroyed && !s.dirty {
		c.SetCookie(&http.Cookie{
			Name:     s.cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   s.cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		s.destroyed = false
		return nil
	}
	if !s.dirty {
		return nil
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()

	if s.rotate {
		if err := s.store.Delete(ctx, s.id); err != nil {
			s.cfg.Logger.Warn().Err(err).Msg("failed to drop rotated session")
		}
		s.id = ""
		s.rotate = false
	}
	if s.id == "" {
		s.id = uuid.NewString()
		s.data.CreatedAt = now
	}
	s.dirty = false

	if err := s.store.Save(ctx, s.id, s.data, s.cfg.TTL); err != nil {
		return errors.Wrap(err, "save session")
	}

	value, err := s.codec.encode(s.id, now)
	if err != nil {
		return errors.Wrap(err, "sign session cookie")
	}
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.cfg.TTL.Seconds()),
		Expires:  now.Add(s.cfg.TTL),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
