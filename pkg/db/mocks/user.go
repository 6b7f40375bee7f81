package mocks

import (
	"context"
	"errors"

	"github.com/openscilab/pycm-api/pkg/db"
)

type UserInterface struct {
	Impl struct {
		Register    func(context.Context, db.UserSpec) (*db.User, error)
		GetByEmail  func(context.Context, string) (*db.User, error)
		GetByApiKey func(context.Context, string) (*db.User, error)
		Find        func(context.Context, int, int) ([]db.User, error)
		SpendCredit func(context.Context, int, int) error
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ db.UserInterface = &UserInterface{}

func (m *UserInterface) Register(ctx context.Context, spec db.UserSpec) (*db.User, error) {
	if m.Impl.Register == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Register(ctx, spec)
}

func (m *UserInterface) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	if m.Impl.GetByEmail == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetByEmail(ctx, email)
}

func (m *UserInterface) GetByApiKey(ctx context.Context, apiKey string) (*db.User, error) {
	if m.Impl.GetByApiKey == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.GetByApiKey(ctx, apiKey)
}

func (m *UserInterface) Find(ctx context.Context, skip int, limit int) ([]db.User, error) {
	if m.Impl.Find == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Find(ctx, skip, limit)
}

func (m *UserInterface) SpendCredit(ctx context.Context, userId int, amount int) error {
	if m.Impl.SpendCredit == nil {
		// most handlers do not care about credit bookkeeping in tests
		return nil
	}
	return m.Impl.SpendCredit(ctx, userId, amount)
}
