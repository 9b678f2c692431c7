package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

// nationalMiddleware restricts an endpoint to national coordinators.
func nationalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsNational() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// actorAndPolicy builds the acting user and a policy over a fresh org
// directory snapshot for the current request.
func actorAndPolicy(ctx echo.Context, orgSvc org.Service) (access.Actor, access.Policy, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return access.Actor{}, access.Policy{}, errors.Wrap(err, "getting context claims")
	}
	dir, err := orgSvc.Directory()
	if err != nil {
		return access.Actor{}, access.Policy{}, errors.Wrap(err, "loading org directory")
	}
	return claims.Actor(), access.NewPolicy(dir), nil
}
