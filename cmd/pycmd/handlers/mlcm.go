package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openscilab/pycm-api/pkg/api/types/errors"
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	apimatrix "github.com/openscilab/pycm-api/pkg/api/types/matrix"
	apimlcm "github.com/openscilab/pycm-api/pkg/api/types/mlcm"
	"github.com/openscilab/pycm-api/pkg/confusion"
	kdb "github.com/openscilab/pycm-api/pkg/db"
)

// MultiLabelHandler multi-hot encodes label-set vectors and derives binary
// confusion matrices per class and per sample. Nothing is stored.
func MultiLabelHandler(dbUser kdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apimlcm.Request{}
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

		ml, err := confusion.NewMultiLabel(
			labels.AsStringSets(req.Actual),
			labels.AsStringSets(req.Predicted),
			labels.AsStrings(req.Classes),
		)
		if errors.Is(err, confusion.ErrInvalidVector) || errors.Is(err, confusion.ErrUnknownClass) {
			return apierr.BadRequest(err.Error(), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		byClasses := make(map[string]apimatrix.Metrics, len(ml.Classes))
		for _, class := range ml.Classes {
			m, err := ml.ByClass(class)
			if err != nil {
				return apierr.InternalServerError(err)
			}
			byClasses[class] = apimatrix.ComposeMetrics(m)
		}

		bySamples := make(map[int]apimatrix.Metrics, len(ml.ActualMultihot))
		for n := range ml.ActualMultihot {
			m, err := ml.BySample(n)
			if err != nil {
				return apierr.InternalServerError(err)
			}
			bySamples[n] = apimatrix.ComposeMetrics(m)
		}

		spendCredit(c, dbUser, user)
		return c.JSON(http.StatusOK, apimlcm.Response{
			MultihotActual:    ml.ActualMultihot,
			MultihotPredicted: ml.PredictedMultihot,
			Classes:           ml.Classes,
			CmByClasses:       byClasses,
			CmBySamples:       bySamples,
		})
	}
}
