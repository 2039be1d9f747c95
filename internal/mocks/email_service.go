package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventoria/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendReviewEmail(ctx context.Context, toEmail, fullName, serviceName string, approved bool, feedback *string) error {
	args := m.Called(ctx, toEmail, fullName, serviceName, approved, feedback)
	return args.Error(0)
}

func (m *EmailService) SendEventConfirmedEmail(ctx context.Context, toEmail, recipientName string, event *domain.ConfirmedEvent) error {
	args := m.Called(ctx, toEmail, recipientName, event)
	return args.Error(0)
}
