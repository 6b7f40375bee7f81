package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	kdb "github.com/openscilab/pycm-api/pkg/db"
)

// authenticate resolves an api_key to its active account.
func authenticate(ctx context.Context, dbUser kdb.UserInterface, apiKey string) (*kdb.User, *echo.HTTPError) {
	if apiKey == "" {
		return nil, apierr.Unauthorized("api_key is required", nil)
	}

	user, err := dbUser.GetByApiKey(ctx, apiKey)
	if errors.Is(err, kdb.ErrMissing) {
		return nil, apierr.Unauthorized("invalid api_key", err)
	} else if err != nil {
		return nil, apierr.InternalServerError(err)
	}
	return user, nil
}

// spendCredit books one credit against the account.
//
// Bookkeeping never fails a request that has already done its work; errors
// are logged and the response goes out as-is.
func spendCredit(c echo.Context, dbUser kdb.UserInterface, user *kdb.User) {
	if err := dbUser.SpendCredit(c.Request().Context(), user.Id, 1); err != nil {
		c.Logger().Warnf("failed to spend credit of user %d: %v", user.Id, err)
	}
}

// queryInt reads a non-negative integer query parameter with a default.
func queryInt(c echo.Context, name string, fallback int) (int, *echo.HTTPError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierr.BadRequest(name+" should be a non-negative integer", err)
	}
	return v, nil
}
