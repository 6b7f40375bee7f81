package matrix

import (
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/openscilab/pycm-api/pkg/utils/cmp"
)

// CreateRequest carries the vectors of a new (or updated) confusion matrix.
type CreateRequest struct {
	ApiKey    string         `json:"api_key"`
	Actual    []labels.Label `json:"actual_vector"`
	Predicted []labels.Label `json:"predicted_vector"`
}

// Summary identifies a stored confusion matrix.
type Summary struct {
	Uid string `json:"uid"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Uid == o.Uid
}

// Metrics is the macro-averaged metric payload of one confusion matrix.
type Metrics struct {
	Accuracy        float64 `json:"accuracy"`
	Precision       float64 `json:"precision"`
	Recall          float64 `json:"recall"`
	F1              float64 `json:"f1"`
	ConfusionMatrix [][]int `json:"confusion_matrix"`
}

func (m Metrics) Equal(o Metrics) bool {
	return m.Accuracy == o.Accuracy &&
		m.Precision == o.Precision &&
		m.Recall == o.Recall &&
		m.F1 == o.F1 &&
		cmp.SliceEqWith(m.ConfusionMatrix, o.ConfusionMatrix, cmp.SliceEq[int])
}

// Detail is the full payload of a stored confusion matrix.
type Detail struct {
	Uid string `json:"uid"`
	Metrics
}

func (d Detail) Equal(o Detail) bool {
	return d.Uid == o.Uid && d.Metrics.Equal(o.Metrics)
}

// Message is a human-readable outcome, used by delete.
type Message struct {
	Message string `json:"message"`
}

// ComposeMetrics builds the metric payload of a confusion matrix.
func ComposeMetrics(m *confusion.Matrix) Metrics {
	return Metrics{
		Accuracy:        m.Accuracy(),
		Precision:       m.PrecisionMacro(),
		Recall:          m.RecallMacro(),
		F1:              m.F1Macro(),
		ConfusionMatrix: m.Table,
	}
}

// ComposeDetail builds the full payload of a stored confusion matrix.
func ComposeDetail(uid string, m *confusion.Matrix) Detail {
	return Detail{Uid: uid, Metrics: ComposeMetrics(m)}
}
