package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const ctxCallerKey = "caller"

var errMissingCaller = errors.New("caller missing from request context")

// AuthJWT verifies an HS256 bearer token and stores the caller in the echo context.
// The token carries the caller id in "sub" and one of customer, seller or admin in
// "role".
func AuthJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c)
			}

			token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || token == nil || !token.Valid {
				return unauthorized(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}
			caller, err := callerFromClaims(claims)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(ctxCallerKey, caller)
			return next(c)
		}
	}
}

func callerFromClaims(claims jwt.MapClaims) (order.Caller, error) {
	sub, _ := claims["sub"].(string)
	rawRole, _ := claims["role"].(string)

	role, err := order.ParseRole(rawRole)
	if err != nil {
		return order.Caller{}, err
	}
	switch role {
	case order.RoleCustomer, order.RoleSeller, order.RoleAdmin:
	default:
		return order.Caller{}, errors.New("role is not allowed")
	}

	return order.NewCaller(sub, role)
}

func callerFrom(c echo.Context) (order.Caller, bool) {
	caller, ok := c.Get(ctxCallerKey).(order.Caller)
	return caller, ok && caller.Validate() == nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "unauthorized"})
}
