package curve

import (
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/openscilab/pycm-api/pkg/utils/cmp"
)

// Request asks for a threshold sweep over per-class probability scores.
//
// Type is "ROC" or "PR". Probabilities holds one row per sample, one column
// per class.
type Request struct {
	ApiKey        string         `json:"api_key"`
	Type          string         `json:"type"`
	Actual        []labels.Label `json:"actual_vector"`
	Probabilities [][]float64    `json:"probability_vector"`
	Classes       []labels.Label `json:"classes,omitempty"`
}

// Response holds the sweep grid and the per-class area under the curve.
type Response struct {
	Thresholds []float64          `json:"thresholds"`
	AucTrp     map[string]float64 `json:"auc_trp"`
}

func (r Response) Equal(o Response) bool {
	return cmp.SliceEq(r.Thresholds, o.Thresholds) &&
		cmp.MapEq(r.AucTrp, o.AucTrp)
}

// ComposeResponse builds the curve payload.
func ComposeResponse(c *confusion.Curve) Response {
	return Response{
		Thresholds: c.Thresholds,
		AucTrp:     c.Area,
	}
}
