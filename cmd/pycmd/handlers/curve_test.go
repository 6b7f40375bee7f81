package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/openscilab/pycm-api/internal/testutils/http"
	apicurve "github.com/openscilab/pycm-api/pkg/api/types/curve"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	"github.com/openscilab/pycm-api/pkg/utils/cmp"

	"github.com/openscilab/pycm-api/cmd/pycmd/handlers"
)

func TestCurveHandler(t *testing.T) {

	t.Run("it sweeps a ROC curve and reports the area per class", func(t *testing.T) {
		owner := kdb.User{Id: 7, ApiKey: "key-7", IsActive: true}
		mckUser := userMockFor(t, owner)

		e := echo.New()
		// perfectly separable scores
		body := `{
			"api_key": "key-7",
			"type": "ROC",
			"actual_vector": [0, 1],
			"probability_vector": [[0.9, 0.1], [0.1, 0.9]]
		}`
		c, respRec := httptestutil.Post(
			e, "/curve/", bytes.NewBufferString(body),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.CurveHandler(mckUser)(c); err != nil {
			t.Fatal(err)
		}

		actual := apicurve.Response{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(actual.Thresholds, []float64{0, 0.1, 0.9, 1}) {
			t.Errorf("unmatch thresholds:%v, expected:[0 0.1 0.9 1]", actual.Thresholds)
		}
		if !cmp.MapEq(actual.AucTrp, map[string]float64{"0": 1, "1": 1}) {
			t.Errorf("unmatch auc:%v, expected: 1 for both classes", actual.AucTrp)
		}
	})

	t.Run("when a declared class never occurs in the actual vector, status code should be 400", func(t *testing.T) {
		owner := kdb.User{Id: 7, ApiKey: "key-7", IsActive: true}
		mckUser := userMockFor(t, owner)

		e := echo.New()
		body := `{
			"api_key": "key-7",
			"type": "ROC",
			"actual_vector": [0, 0],
			"probability_vector": [[0.6, 0.4], [0.2, 0.8]],
			"classes": [0, 1]
		}`
		c, _ := httptestutil.Post(
			e, "/curve/", bytes.NewBufferString(body),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.CurveHandler(mckUser)(c)
		if err == nil {
			t.Fatal("no error occured")
		}
		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})

	t.Run("when the curve type is unknown, status code should be 400", func(t *testing.T) {
		owner := kdb.User{Id: 7, ApiKey: "key-7", IsActive: true}
		mckUser := userMockFor(t, owner)

		e := echo.New()
		body := `{
			"api_key": "key-7",
			"type": "DET",
			"actual_vector": [0, 1],
			"probability_vector": [[0.9, 0.1], [0.1, 0.9]]
		}`
		c, _ := httptestutil.Post(
			e, "/curve/", bytes.NewBufferString(body),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.CurveHandler(mckUser)(c)
		if err == nil {
			t.Fatal("no error occured")
		}
		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})

	t.Run("when a probability row is ragged, status code should be 400", func(t *testing.T) {
		owner := kdb.User{Id: 7, ApiKey: "key-7", IsActive: true}
		mckUser := userMockFor(t, owner)

		e := echo.New()
		body := `{
			"api_key": "key-7",
			"type": "PR",
			"actual_vector": [0, 1],
			"probability_vector": [[0.9, 0.1], [0.1]]
		}`
		c, _ := httptestutil.Post(
			e, "/curve/", bytes.NewBufferString(body),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.CurveHandler(mckUser)(c)
		if err == nil {
			t.Fatal("no error occured")
		}
		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
	})
}
