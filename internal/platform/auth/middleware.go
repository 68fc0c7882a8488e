package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	SessionKey contextKey = "session"
)

// Revocations reports whether a token id has been revoked.
type Revocations interface {
	IsRevoked(jti string) bool
}

type MiddlewareConfig struct {
	Issuer  *Issuer
	Revoked Revocations
	Skipper middleware.Skipper
}

// BearerMiddleware authenticates requests carrying "Authorization: Bearer
// <token>" and stores the user id and session on the request context.
func BearerMiddleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			claims, err := cfg.Issuer.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if cfg.Revoked != nil && cfg.Revoked.IsRevoked(claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			sess := &Session{
				Token:     raw,
				TokenID:   claims.ID,
				UserID:    claims.Subject,
				ExpiresAt: claims.ExpiresAt.Time,
			}
			c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), sess)))
			return next(c)
		}
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on WebSocket upgrades, so those may pass ?access_token= instead.
func bearerToken(c echo.Context) (string, error) {
	req := c.Request()
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if strings.EqualFold(req.Header.Get(echo.HeaderUpgrade), "websocket") {
			if tok := c.QueryParam("access_token"); tok != "" {
				return tok, nil
			}
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	scheme, raw, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
	}
	return strings.TrimSpace(raw), nil
}

// WithSession returns a context carrying sess and its user id.
func WithSession(ctx context.Context, sess *Session) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, sess.UserID)
	return context.WithValue(ctx, SessionKey, sess)
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(SessionKey).(*Session)
	return sess
}
