package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
)

type ApprovalRequestRepository struct {
	mock.Mock
}

func (m *ApprovalRequestRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *ApprovalRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *ApprovalRequestRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *ApprovalRequestRepository) List(ctx context.Context, status *domain.ApprovalStatus, params domain.PaginationParams) ([]domain.ApprovalRequest, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Get(1).(int64), args.Error(2)
}

func (m *ApprovalRequestRepository) Review(ctx context.Context, req *domain.ApprovalRequest, from domain.ApprovalStatus) error {
	args := m.Called(ctx, req, from)
	return args.Error(0)
}

func (m *ApprovalRequestRepository) CountByStatus(ctx context.Context, status domain.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ApprovalRequestRepository) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	args := m.Called(ctx, vendorID)
	return args.Error(0)
}
