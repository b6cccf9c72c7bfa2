package http

import (
	"context"

	"github.com/YusovID/skillswap-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// StoreMock stubs the calls used by the tests; the embedded interface makes
// any other call panic.
type StoreMock struct {
	Store
	mock.Mock
}

func (m *StoreMock) SearchUsers(ctx context.Context, query, category string) []domain.User {
	args := m.Called(ctx, query, category)
	return args.Get(0).([]domain.User)
}

func (m *StoreMock) GetUserByID(ctx context.Context, id string) (domain.User, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Bool(1)
}

func (m *StoreMock) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *StoreMock) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *StoreMock) SetUserVisibility(ctx context.Context, id string, public bool) (domain.User, error) {
	args := m.Called(ctx, id, public)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *StoreMock) CreateSwapRequest(ctx context.Context, in domain.NewSwapRequest) (domain.SwapRequest, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.SwapRequest), args.Error(1)
}

func (m *StoreMock) UpdateSwapRequestStatus(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
) (domain.SwapRequest, *domain.ActiveSwap, error) {
	args := m.Called(ctx, id, status)

	var swap *domain.ActiveSwap
	if v := args.Get(1); v != nil {
		swap = v.(*domain.ActiveSwap)
	}

	return args.Get(0).(domain.SwapRequest), swap, args.Error(2)
}

func (m *StoreMock) DeleteSwapRequest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreMock) CompleteSwap(ctx context.Context, id string, c domain.SwapCompletion) (domain.ActiveSwap, error) {
	args := m.Called(ctx, id, c)
	return args.Get(0).(domain.ActiveSwap), args.Error(1)
}

func (m *StoreMock) GetStats(ctx context.Context) domain.Stats {
	args := m.Called(ctx)
	return args.Get(0).(domain.Stats)
}

func (m *StoreMock) ExportUserActivity(ctx context.Context) domain.ActivityExport {
	args := m.Called(ctx)
	return args.Get(0).(domain.ActivityExport)
}

type SessionsMock struct {
	mock.Mock
}

func (m *SessionsMock) Login(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *SessionsMock) Current(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *SessionsMock) Refresh(ctx context.Context) (domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *SessionsMock) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
