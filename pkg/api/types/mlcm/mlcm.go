package mlcm

import (
	"github.com/openscilab/pycm-api/pkg/api/types/labels"
	apimatrix "github.com/openscilab/pycm-api/pkg/api/types/matrix"
)

// Request carries multi-label vectors: one label set per sample.
type Request struct {
	ApiKey    string           `json:"api_key"`
	Actual    [][]labels.Label `json:"actual_vector"`
	Predicted [][]labels.Label `json:"predicted_vector"`
	Classes   []labels.Label   `json:"classes,omitempty"`
}

// Response holds the multi-hot encodings plus the derived binary matrices,
// per class and per sample. Nothing here is persisted.
type Response struct {
	MultihotActual    [][]int                      `json:"multihot_actual"`
	MultihotPredicted [][]int                      `json:"multihot_predicted"`
	Classes           []string                     `json:"classes"`
	CmByClasses       map[string]apimatrix.Metrics `json:"cm_by_classes"`
	CmBySamples       map[int]apimatrix.Metrics    `json:"cm_by_samples"`
}
