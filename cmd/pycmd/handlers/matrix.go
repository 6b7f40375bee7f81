package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	apimatrix "github.com/openscilab/pycm-api/pkg/api/types/matrix"
	"github.com/openscilab/pycm-api/pkg/confusion"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	"github.com/openscilab/pycm-api/pkg/filestore"
)

// CreateMatrixHandler builds a confusion matrix from label vectors and
// stores it: object file first, index row second.
//
// When the row insert fails the object file is removed again, so a row
// exists only if its file does.
func CreateMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req, httperr := bindCreateRequest(c)
		if httperr != nil {
			return httperr
		}

		user, httperr := authenticate(ctx, dbUser, req.ApiKey)
		if httperr != nil {
			return httperr
		}

		m, httperr := buildMatrix(req)
		if httperr != nil {
			return httperr
		}

		uid := uuid.NewString()
		if err := store.SaveObject(uid, m); err != nil {
			return apierr.InternalServerError(err)
		}
		if _, err := dbMatrix.Register(ctx, uid, user.Id); err != nil {
			if perr := store.Purge(uid); perr != nil {
				c.Logger().Warnf("failed to clean up object %s: %v", uid, perr)
			}
			if errors.Is(err, kdb.ErrConflict) {
				return apierr.Conflict("uid collision, retry the request", apierr.WithError(err))
			}
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apimatrix.ComposeDetail(uid, m))
	}
}

// GetMatrixHandler returns the metrics of a stored matrix to its owner.
func GetMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, httperr := authenticate(ctx, dbUser, c.QueryParam("api_key"))
		if httperr != nil {
			return httperr
		}

		m, uid, httperr := loadOwned(c, dbMatrix, store, user)
		if httperr != nil {
			return httperr
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apimatrix.ComposeDetail(uid, m))
	}
}

// UpdateMatrixHandler overwrites the object of an existing uid with new
// vectors and drops its cached report/plot. The row is untouched.
func UpdateMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		uid := c.QueryParam("cm_uid")
		if uid == "" {
			return apierr.BadRequest("cm_uid is required", nil)
		}

		req, httperr := bindCreateRequest(c)
		if httperr != nil {
			return httperr
		}

		user, httperr := authenticate(ctx, dbUser, req.ApiKey)
		if httperr != nil {
			return httperr
		}

		row, err := dbMatrix.Get(ctx, uid)
		if errors.Is(err, kdb.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}
		if row.OwnerId != user.Id {
			return apierr.Forbidden("not the owner of this confusion matrix")
		}

		m, httperr := buildMatrix(req)
		if httperr != nil {
			return httperr
		}

		if err := store.SaveObject(uid, m); err != nil {
			return apierr.InternalServerError(err)
		}
		store.Invalidate(uid)

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apimatrix.ComposeDetail(uid, m))
	}
}

// DeleteMatrixHandler removes the row, the object and the cached artifacts
// of a uid.
func DeleteMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
	paramKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, httperr := authenticate(ctx, dbUser, c.QueryParam("api_key"))
		if httperr != nil {
			return httperr
		}

		uid := c.Param(paramKey)
		row, err := dbMatrix.Get(ctx, uid)
		if errors.Is(err, kdb.ErrMissing) {
			return apierr.NotFound()
		} else if err != nil {
			return apierr.InternalServerError(err)
		}
		if row.OwnerId != user.Id {
			return apierr.Forbidden("not the owner of this confusion matrix")
		}

		if err := dbMatrix.Delete(ctx, uid); err != nil && !errors.Is(err, kdb.ErrMissing) {
			return apierr.InternalServerError(err)
		}
		if err := store.Purge(uid); err != nil && !errors.Is(err, filestore.ErrMissing) {
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apimatrix.Message{Message: "confusion matrix deleted"})
	}
}

// ReportMatrixHandler serves the HTML report of a stored matrix, rendered
// once and cached.
func ReportMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, httperr := authenticate(ctx, dbUser, c.QueryParam("api_key"))
		if httperr != nil {
			return httperr
		}

		m, uid, httperr := loadOwned(c, dbMatrix, store, user)
		if httperr != nil {
			return httperr
		}

		content, err := store.Report(uid, m)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.HTMLBlob(http.StatusOK, content)
	}
}

// PlotMatrixHandler serves the PNG heatmap of a stored matrix, rendered once
// and cached.
func PlotMatrixHandler(
	dbUser kdb.UserInterface,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, httperr := authenticate(ctx, dbUser, c.QueryParam("api_key"))
		if httperr != nil {
			return httperr
		}

		m, uid, httperr := loadOwned(c, dbMatrix, store, user)
		if httperr != nil {
			return httperr
		}

		content, err := store.Plot(uid, m)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.Blob(http.StatusOK, "image/png", content)
	}
}

// ListCmsHandler pages through all stored matrices with recomputed metrics.
// Admin only; basic-auth is enforced by middleware, not here.
func ListCmsHandler(dbMatrix kdb.MatrixInterface, store *filestore.Store) echo.HandlerFunc {
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

		rows, err := dbMatrix.Find(ctx, skip, limit)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := make([]apimatrix.Detail, 0, len(rows))
		for _, row := range rows {
			m, err := store.LoadObject(row.Uid)
			if err != nil {
				return apierr.InternalServerError(err)
			}
			found = append(found, apimatrix.ComposeDetail(row.Uid, m))
		}

		return c.JSON(http.StatusOK, found)
	}
}

// loadOwned resolves the cm_uid query parameter to the caller's stored
// matrix: 404 when row or object is missing, 403 when owned by someone else.
func loadOwned(
	c echo.Context,
	dbMatrix kdb.MatrixInterface,
	store *filestore.Store,
	user *kdb.User,
) (*confusion.Matrix, string, *echo.HTTPError) {
	ctx := c.Request().Context()

	uid := c.QueryParam("cm_uid")
	if uid == "" {
		return nil, "", apierr.BadRequest("cm_uid is required", nil)
	}

	row, err := dbMatrix.Get(ctx, uid)
	if errors.Is(err, kdb.ErrMissing) {
		return nil, "", apierr.NotFound()
	} else if err != nil {
		return nil, "", apierr.InternalServerError(err)
	}
	if row.OwnerId != user.Id {
		return nil, "", apierr.Forbidden("not the owner of this confusion matrix")
	}

	m, err := store.LoadObject(uid)
	if errors.Is(err, filestore.ErrMissing) {
		return nil, "", apierr.NotFound()
	} else if err != nil {
		return nil, "", apierr.InternalServerError(err)
	}
	return m, uid, nil
}

func bindCreateRequest(c echo.Context) (apimatrix.CreateRequest, *echo.HTTPError) {
	req := apimatrix.CreateRequest{}
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return req, apierr.NewErrorMessage(
			http.StatusBadRequest,
			"format error",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	}
	return req, nil
}

func buildMatrix(req apimatrix.CreateRequest) (*confusion.Matrix, *echo.HTTPError) {
	m, err := confusion.New(labels.AsStrings(req.Actual), labels.AsStrings(req.Predicted))
	if errors.Is(err, confusion.ErrInvalidVector) {
		return nil, apierr.BadRequest(err.Error(), err)
	} else if err != nil {
		return nil, apierr.InternalServerError(err)
	}
	return m, nil
}
