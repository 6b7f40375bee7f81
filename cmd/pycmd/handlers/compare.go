package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apicompare "github.com/openscilab/pycm-api/pkg/api/types/compare"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	"github.com/openscilab/pycm-api/pkg/confusion"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	"github.com/openscilab/pycm-api/pkg/filestore"
)

// CompareMatricesHandler ranks stored matrices owned by the caller.
func CompareMatricesHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apicompare.Request{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		user, httperr := authenticate(ctx, dbUser, req.ApiKey)
		if httperr != nil {
			return httperr
		}

		matrices := map[string]*confusion.Matrix{}
		for _, uid := range req.CmUids {
			row, err := dbMatrix.Get(ctx, uid)
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			} else if err != nil {
				return apierr.InternalServerError(err)
			}
			if row.OwnerId != user.Id {
				return apierr.Forbidden("not the owner of confusion matrix " + uid)
			}

			m, err := store.LoadObject(uid)
			if errors.Is(err, filestore.ErrMissing) {
				return apierr.NotFound()
			} else if err != nil {
				return apierr.InternalServerError(err)
			}
			matrices[uid] = m
		}

		result, err := confusion.Compare(matrices)
		if errors.Is(err, confusion.ErrTooFewMatrices) {
			return apierr.BadRequest("give at least 2 distinct cm_uids", err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apicompare.ComposeResponse(req.CmUids, result))
	}
}
