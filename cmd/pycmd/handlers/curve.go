package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apicurve "github.com/openscilab/pycm-api/pkg/api/types/curve"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	"github.com/openscilab/pycm-api/pkg/confusion"
	kdb "github.com/openscilab/pycm-api/pkg/db"
)

// CurveHandler sweeps ROC or PR curves over probability scores and returns
// the per-class area under each curve. Nothing is stored.
func CurveHandler(dbUser kdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apicurve.Request{}
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

		curve, err := confusion.NewCurve(
			confusion.Kind(req.Type),
			labels.AsStrings(req.Actual),
			req.Probabilities,
			labels.AsStrings(req.Classes),
		)
		if errors.Is(err, confusion.ErrUnknownCurveKind) || errors.Is(err, confusion.ErrInvalidVector) {
			return apierr.BadRequest(err.Error(), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apicurve.ComposeResponse(curve))
	}
}
