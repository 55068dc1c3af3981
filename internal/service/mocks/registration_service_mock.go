package mocks

import (
	"context"

	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRegistrationService struct {
	mock.Mock
}

// NewMockRegistrationService 建立 mock 並於測試結束時檢查 expectations
func NewMockRegistrationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRegistrationService {
	m := &MockRegistrationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistrationService) CreateRegistration(ctx context.Context, actor model.Identity, req model.CreateRegistrationRequest) (*model.Registration, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) GetRegistration(ctx context.Context, actor model.Identity, id int) (*model.Registration, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListMyBookings(ctx context.Context, actor model.Identity) ([]*model.Registration, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListEventRegistrations(ctx context.Context, actor model.Identity, eventID int) ([]*model.Registration, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ListAllRegistrations(ctx context.Context, actor model.Identity) ([]*model.Registration, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *MockRegistrationService) ScanTicket(ctx context.Context, actor model.Identity, ticketCode string) (*model.ScanResult, error) {
	args := m.Called(ctx, actor, ticketCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanResult), args.Error(1)
}
