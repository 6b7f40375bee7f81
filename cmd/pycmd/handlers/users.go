package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	apiusers "github.com/openscilab/pycm-api/pkg/api/types/users"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	"github.com/openscilab/pycm-api/pkg/utils/rand"
	"github.com/openscilab/pycm-api/pkg/utils/slices"
	"golang.org/x/crypto/bcrypt"
)

// bytes of entropy behind each issued API key.
const apiKeyBytes = 32

// SignUpHandler creates accounts.
//
// Fresh accounts get a bcrypt password hash, a random API key and the
// configured credit balance.
func SignUpHandler(dbUser kdb.UserInterface, defaultCredit int) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cred, httperr := bindCredential(c)
		if httperr != nil {
			return httperr
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		apiKey, err := rand.URLSafeToken(apiKeyBytes)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		user, err := dbUser.Register(ctx, kdb.UserSpec{
			Email:          cred.Email,
			HashedPassword: string(hashed),
			ApiKey:         apiKey,
			Credit:         defaultCredit,
		})
		if errors.Is(err, kdb.ErrConflict) {
			return apierr.Conflict("email already registered", apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.ComposeDetail(*user))
	}
}

// SignInHandler checks a credential pair and returns the account, API key
// included.
func SignInHandler(dbUser kdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cred, httperr := bindCredential(c)
		if httperr != nil {
			return httperr
		}

		user, err := dbUser.GetByEmail(ctx, cred.Email)
		if errors.Is(err, kdb.ErrMissing) {
			return apierr.Unauthorized("unknown email or wrong password", err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(user.HashedPassword), []byte(cred.Password),
		); err != nil {
			return apierr.Unauthorized("unknown email or wrong password", err)
		}

		return c.JSON(http.StatusOK, apiusers.ComposeDetail(*user))
	}
}

// ListUsersHandler pages through accounts in insertion order. Admin only;
// basic-auth is enforced by middleware, not here.
func ListUsersHandler(dbUser kdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		skip, httperr := queryInt(c, "skip", 0)
		if httperr != nil {
			return httperr
		}
		limit, httperr := queryInt(c, "limit", 100)
		if httperr != nil {
			return httperr
		}

		users, err := dbUser.Find(ctx, skip, limit)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, slices.Map(users, apiusers.ComposeDetail))
	}
}

func bindCredential(c echo.Context) (apiusers.Credential, *echo.HTTPError) {
	cred := apiusers.Credential{}
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cred); err != nil {
		return cred, apierr.NewErrorMessage(
			http.StatusBadRequest,
			"format error",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	}
	if cred.Email == "" || cred.Password == "" {
		return cred, apierr.BadRequest("email and password are required", nil)
	}
	return cred, nil
}
