package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bitforge_shop/pkg/authclient"
	"github.com/Skotchmaster/bitforge_shop/pkg/logging"
	"github.com/Skotchmaster/bitforge_shop/pkg/tokens"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	ctxUserID = "user_id"
	ctxClaims = "claims"
)

var ErrUnauthorized = errors.New("unauthorized")

// CustomerRecorder keeps a local projection of authenticated users.
type CustomerRecorder interface {
	Touch(ctx context.Context, id uuid.UUID, username, email string) error
}

type AuthMiddleware struct {
	JWTSecret  []byte
	AuthClient *authclient.Client
	Customers  CustomerRecorder
	// CookieSecure sets the Secure flag on refreshed and cleared auth cookies.
	CookieSecure bool

	// recorded holds the last username and email written per user.
	recorded sync.Map
}

func NewAuthMiddleware(secret []byte, authClient *authclient.Client, customers CustomerRecorder) *AuthMiddleware {
	return &AuthMiddleware{
		JWTSecret:    secret,
		AuthClient:   authClient,
		Customers:    customers,
		CookieSecure: true,
	}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !claims.IsStaff() {
			return echo.NewHTTPError(http.StatusForbidden, "staff access required")
		}
		return nil
	})
}

func (m *AuthMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			if !errors.Is(err, jwt.ErrTokenExpired) || m.AuthClient == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			claims, err = m.refresh(c, raw)
			if err != nil {
				m.clearAuthCookies(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
			}
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject")
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxClaims, claims)

		m.recordCustomer(c.Request().Context(), userID, claims)

		return next(c)
	}
}

// recordCustomer writes the projection only when the username or email
// differs from the last successful write for this user.
func (m *AuthMiddleware) recordCustomer(ctx context.Context, userID uuid.UUID, claims *tokens.AccessClaims) {
	if m.Customers == nil {
		return
	}
	profile := claims.Username + "\x00" + claims.Email
	if last, ok := m.recorded.Load(userID); ok && last.(string) == profile {
		return
	}
	if err := m.Customers.Touch(ctx, userID, claims.Username, claims.Email); err != nil {
		logging.FromContext(ctx).Warn("customer_touch_error", "user_id", userID, "error", err)
		return
	}
	m.recorded.Store(userID, profile)
}

// refresh asks the auth service for a fresh pair when the access token has
// expired and a refresh cookie is present.
func (m *AuthMiddleware) refresh(c echo.Context, access string) (*tokens.AccessClaims, error) {
	refreshCookie, err := c.Cookie(RefreshCookie)
	if err != nil || refreshCookie.Value == "" || m.AuthClient == nil {
		return nil, ErrUnauthorized
	}

	resp, err := m.AuthClient.RefreshTokens(c.Request().Context(), refreshCookie.Value, access)
	if err != nil {
		return nil, err
	}

	c.SetCookie(m.createCookie(AccessCookie, resp.AccessToken, time.Unix(resp.AccessExp, 0)))
	c.SetCookie(m.createCookie(RefreshCookie, resp.RefreshToken, time.Unix(resp.RefreshExp, 0)))

	return tokens.AccessClaimsFromToken(resp.AccessToken, m.JWTSecret)
}

func accessToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if ck, err := c.Cookie(AccessCookie); err == nil {
		return ck.Value
	}
	return ""
}

// UserID returns the authenticated user set by RequireAuth/RequireStaff.
func UserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ctxUserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func Claims(c echo.Context) (*tokens.AccessClaims, bool) {
	claims, ok := c.Get(ctxClaims).(*tokens.AccessClaims)
	return claims, ok
}

func (m *AuthMiddleware) createCookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *AuthMiddleware) clearAuthCookies(c echo.Context) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
