package users

import (
	apimatrix "github.com/openscilab/pycm-api/pkg/api/types/matrix"
	kdb "github.com/openscilab/pycm-api/pkg/db"
	"github.com/openscilab/pycm-api/pkg/utils/cmp"
	"github.com/openscilab/pycm-api/pkg/utils/slices"
)

// Credential is the sign-up / sign-in request body.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Detail is the account payload returned on sign-up, sign-in and the admin
// listing.
//
// The password hash never leaves the server; the API key does, since it is
// the client's credential for everything else.
type Detail struct {
	Id       int                 `json:"id"`
	Email    string              `json:"email"`
	ApiKey   string              `json:"api_key"`
	Credit   int                 `json:"credit"`
	IsActive bool                `json:"is_active"`
	Cms      []apimatrix.Summary `json:"cms"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Email == o.Email &&
		d.ApiKey == o.ApiKey &&
		d.Credit == o.Credit &&
		d.IsActive == o.IsActive &&
		cmp.SliceEqWith(d.Cms, o.Cms, apimatrix.Summary.Equal)
}

// ComposeDetail builds the account payload from an account row.
func ComposeDetail(u kdb.User) Detail {
	return Detail{
		Id:       u.Id,
		Email:    u.Email,
		ApiKey:   u.ApiKey,
		Credit:   u.Credit,
		IsActive: u.IsActive,
		Cms: slices.Map(u.MatrixUids, func(uid string) apimatrix.Summary {
			return apimatrix.Summary{Uid: uid}
		}),
	}
}
