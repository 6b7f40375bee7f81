package mocks

import (
	"context"
	"errors"

	"github.com/openscilab/pycm-api/pkg/db"
)

type MatrixInterface struct {
	Impl struct {
		Register func(context.Context, string, int) (*db.Matrix, error)
		Get      func(context.Context, string) (*db.Matrix, error)
		Find     func(context.Context, int, int) ([]db.Matrix, error)
		Delete   func(context.Context, string) error
	}
}

func NewMatrixInterface() *MatrixInterface {
	return &MatrixInterface{}
}

var _ db.MatrixInterface = &MatrixInterface{}

func (m *MatrixInterface) Register(ctx context.Context, uid string, ownerId int) (*db.Matrix, error) {
	if m.Impl.Register == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Register(ctx, uid, ownerId)
}

func (m *MatrixInterface) Get(ctx context.Context, uid string) (*db.Matrix, error) {
	if m.Impl.Get == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Get(ctx, uid)
}

func (m *MatrixInterface) Find(ctx context.Context, skip int, limit int) ([]db.Matrix, error) {
	if m.Impl.Find == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Find(ctx, skip, limit)
}

func (m *MatrixInterface) Delete(ctx context.Context, uid string) error {
	if m.Impl.Delete == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Delete(ctx, uid)
}
