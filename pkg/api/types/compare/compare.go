package compare

import (
	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/openscilab/pycm-api/pkg/utils/cmp"
)

// Request names the stored confusion matrices to rank.
type Request struct {
	ApiKey string   `json:"api_key"`
	CmUids []string `json:"cm_uids"`
}

// Response ranks the requested matrices best-to-worst.
type Response struct {
	CmUids   []string                   `json:"cm_uids"`
	BestName string                     `json:"best_name"`
	CmScores map[string]confusion.Score `json:"cm_scores"`
	CmOrders []string                   `json:"cm_orders"`
}

func (r Response) Equal(o Response) bool {
	return cmp.SliceEq(r.CmUids, o.CmUids) &&
		r.BestName == o.BestName &&
		cmp.MapEq(r.CmScores, o.CmScores) &&
		cmp.SliceEq(r.CmOrders, o.CmOrders)
}

// ComposeResponse builds the comparison payload.
func ComposeResponse(uids []string, c *confusion.Comparison) Response {
	return Response{
		CmUids:   uids,
		BestName: c.Best,
		CmScores: c.Scores,
		CmOrders: c.Sorted,
	}
}
