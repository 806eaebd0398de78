package http

import (
	"net/http"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorIDContextKey is the echo context key carrying the authenticated actor.
const actorIDContextKey = "actor_id"

// Claims carries the authenticated account identity.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// ActorAuth validates the bearer token and stores the actor's account ID in
// the request context. Handlers resolve the account and authorize against the
// domain policy; the middleware only establishes identity.
func ActorAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing authorization header",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid authorization header format",
				})
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			actorID, err := kernel.UUIDFromString(claims.AccountID)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token subject",
				})
			}

			ctx.Set(actorIDContextKey, actorID)
			return next(ctx)
		}
	}
}

// IssueActorToken signs a token identifying the given account.
// Used by operational tooling and tests; the service itself never issues tokens.
func IssueActorToken(secret string, accountID kernel.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// actorFromContext returns the actor ID stored by ActorAuth.
func actorFromContext(ctx echo.Context) (kernel.UUID, bool) {
	actorID, ok := ctx.Get(actorIDContextKey).(kernel.UUID)
	return actorID, ok
}
