package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stockway/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

var errMissingPrincipal = errors.New("request has no authenticated principal")

// Claims are the identity provider token claims the marketplace relies on.
// The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued by the identity provider.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Middleware rejects requests without a valid token with 401 and stores the
// caller's kernel.Principal and email on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return unauthorized(c, "Authentication credentials were not provided")
			}

			claims, err := a.Parse(raw)
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				return unauthorized(c, err.Error())
			}

			c.Set(principalContextKey, principal)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

func (a *Authenticator) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Issue signs a token for the given identity. Used by tests and local
// tooling that stands in for the identity provider.
func (a *Authenticator) Issue(userID kernel.UUID, email string, role kernel.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(a.secret)
}

func principalFromClaims(claims *Claims) (kernel.Principal, error) {
	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Principal{}, fmt.Errorf("token subject: %w", err)
	}
	role, err := kernel.RoleFromString(strings.ToUpper(claims.Role))
	if err != nil {
		return kernel.Principal{}, fmt.Errorf("token role: %w", err)
	}
	return kernel.NewPrincipal(userID, role)
}

func principalFrom(c echo.Context) (kernel.Principal, error) {
	principal, ok := c.Get(principalContextKey).(kernel.Principal)
	if !ok {
		return kernel.Principal{}, errMissingPrincipal
	}
	return principal, nil
}

func emailFrom(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
