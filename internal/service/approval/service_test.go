package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/mocks"
	"eventoria/internal/pkg/validation"
)

type fixture struct {
	repos  *mocks.Repositories
	tx     *mocks.TxManager
	notifs *mocks.NotificationService
	email  *mocks.EmailService
	svc    Service
}

func newFixture() *fixture {
	repos := mocks.NewRepositories()
	f := &fixture{
		repos:  repos,
		tx:     &mocks.TxManager{Repos: repos.Repos()},
		notifs: new(mocks.NotificationService),
		email:  new(mocks.EmailService),
	}
	f.email.On("SendReviewEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	v := validation.New(time.UTC).WithClock(func() time.Time {
		return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	})
	f.svc = NewService(repos.Repos(), f.tx, f.notifs, f.email, v, nil)
	return f
}

func pendingRequest() *domain.ApprovalRequest {
	return &domain.ApprovalRequest{
		ID:          uuid.New(),
		VendorID:    uuid.New(),
		VendorName:  "Alex Ionescu",
		VendorEmail: "alex@example.ro",
		Service: domain.ServiceSnapshot{
			Name:          "DJ Alex Beats",
			Description:   "DJ profesionist pentru nunți și petreceri private.",
			CategoryID:    "3",
			Subcategories: []string{"DJ"},
			Price:         domain.Price{Amount: 1500, Unit: domain.PerEvent},
			Locations:     []string{"Cluj-Napoca"},
			Tags:          []string{"muzica"},
		},
		Status: domain.ApprovalPending,
	}
}

func validForm() domain.ServiceForm {
	return domain.ServiceForm{
		Name:          "DJ Alex Beats",
		Description:   "DJ profesionist pentru nunți și petreceri private.",
		CategoryID:    "3",
		Subcategories: []string{"DJ"},
		Price:         domain.Price{Amount: 1500, Unit: domain.PerEvent},
		Locations:     []string{"Cluj-Napoca"},
		Date:          "2025-07-01",
		ImageURL:      "https://cdn.example.ro/dj.jpg",
		Phone:         "0721 234 567",
		Email:         "alex@example.ro",
		Tags:          []string{"muzica"},
	}
}

func TestApprove_PublishesListingAndNotifiesVendor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	adminID := uuid.New()
	req := pendingRequest()
	welcome := " Welcome! "

	f.repos.ApprovalRequest.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	f.repos.ApprovalRequest.On("Review", ctx, mock.MatchedBy(func(r *domain.ApprovalRequest) bool {
		return r.Status == domain.ApprovalApproved && *r.ReviewedBy == adminID
	}), domain.ApprovalPending).Return(nil).Once()
	f.repos.Listing.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Name == "DJ Alex Beats" && l.VendorID == req.VendorID && l.Status == domain.ListingActive &&
			l.ApprovalRequestID != nil && *l.ApprovalRequestID == req.ID
	})).Return(nil).Once()
	f.notifs.On("Append", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == req.VendorID && n.Type == domain.NotifServiceApproved &&
			n.Message == `Serviciul "DJ Alex Beats" a fost aprobat: Welcome!`
	})).Return(nil).Once()
	f.notifs.On("Push", ctx, mock.Anything).Once()
	f.notifs.On("PushToAdmins", ctx).Once()

	got, listing, err := f.svc.Approve(ctx, adminID, req.ID, domain.ReviewInput{Feedback: &welcome})

	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, got.Status)
	require.NotNil(t, got.AdminFeedback)
	assert.Equal(t, "Welcome!", *got.AdminFeedback)
	require.NotNil(t, listing)
	assert.Equal(t, 1, f.tx.Calls)

	f.repos.AssertExpectations(t)
	f.notifs.AssertExpectations(t)
}

func TestReview_AlreadyDecidedWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := pendingRequest()
	req.Status = domain.ApprovalApproved

	f.repos.ApprovalRequest.On("GetByID", ctx, req.ID).Return(req, nil).Twice()

	_, _, err := f.svc.Approve(ctx, uuid.New(), req.ID, domain.ReviewInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Reject(ctx, uuid.New(), req.ID, domain.ReviewInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, 0, f.tx.Calls)
	f.notifs.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	f.notifs.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestReject_LostRaceIsReported(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := pendingRequest()

	f.repos.ApprovalRequest.On("GetByID", ctx, req.ID).Return(req, nil).Once()
	f.repos.ApprovalRequest.On("Review", ctx, mock.Anything, domain.ApprovalPending).Return(domain.ErrStaleState).Once()

	_, err := f.svc.Reject(ctx, uuid.New(), req.ID, domain.ReviewInput{})

	assert.True(t, errors.Is(err, domain.ErrStaleState))
	f.repos.Listing.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifs.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestReview_MissingRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := uuid.New()

	f.repos.ApprovalRequest.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := f.svc.Reject(ctx, uuid.New(), id, domain.ReviewInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	vendor := &domain.User{ID: uuid.New(), FullName: "Alex Ionescu", Role: domain.RoleVendor}

	t.Run("Participants cannot submit", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Submit(ctx, &domain.User{ID: uuid.New(), Role: domain.RoleParticipant}, validForm())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Invalid form", func(t *testing.T) {
		f := newFixture()
		form := validForm()
		form.Description = "prea scurt"
		form.Date = "2025-06-01"

		_, err := f.svc.Submit(ctx, vendor, form)

		var fe domain.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.True(t, fe.Has("description"))
		assert.True(t, fe.Has("date"))
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("Unknown category", func(t *testing.T) {
		f := newFixture()
		f.repos.Category.On("Exists", ctx, "3").Return(false, nil).Once()

		_, err := f.svc.Submit(ctx, vendor, validForm())

		var fe domain.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.True(t, fe.Has("category_id"))
	})

	t.Run("Alerts every admin", func(t *testing.T) {
		f := newFixture()
		admins := []domain.User{{ID: uuid.New(), Role: domain.RoleAdmin}, {ID: uuid.New(), Role: domain.RoleAdmin}}

		f.repos.Category.On("Exists", ctx, "3").Return(true, nil).Once()
		f.repos.ApprovalRequest.On("Create", ctx, mock.MatchedBy(func(r *domain.ApprovalRequest) bool {
			return r.Status == domain.ApprovalPending && r.VendorPhone == "0721234567" &&
				r.Service.Date.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
		})).Return(nil).Once()
		f.repos.User.On("ListByRole", ctx, domain.RoleAdmin).Return(admins, nil).Once()
		f.notifs.On("Append", ctx, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotifRequestReceived
		})).Return(nil).Twice()
		f.notifs.On("Push", ctx, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 2
		})).Once()

		req, err := f.svc.Submit(ctx, vendor, validForm())

		require.NoError(t, err)
		assert.Equal(t, vendor.ID, req.VendorID)
		f.repos.AssertExpectations(t)
		f.notifs.AssertExpectations(t)
	})
}

func TestListForReview_RejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	status := domain.ApprovalStatus("archived")

	_, err := f.svc.ListForReview(context.Background(), &status, domain.DefaultPagination())

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Has("status"))
}
