package domain

import "fmt"

type Role string

const (
	RoleParticipant Role = "participant"
	RoleVendor      Role = "vendor"
	RoleAdmin       Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// Label is the Romanian name shown in admin activity feeds.
func (r Role) Label() string {
	switch r {
	case RoleVendor:
		return "furnizor"
	case RoleAdmin:
		return "administrator"
	default:
		return "participant"
	}
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalApproved: {},
	ApprovalRejected: {},
}

func (s ApprovalStatus) IsValid() bool {
	_, ok := approvalTransitions[s]
	return ok
}

func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingConfirmed BookingStatus = "confirmed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingAccepted, BookingRejected},
	BookingAccepted:  {BookingConfirmed},
	BookingRejected:  {},
	BookingConfirmed: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingInactive ListingStatus = "inactive"
)

type PriceUnit string

const (
	PerHour   PriceUnit = "per_hour"
	PerEvent  PriceUnit = "per_event"
	PerPerson PriceUnit = "per_person"
)

func (u PriceUnit) IsValid() bool {
	switch u {
	case PerHour, PerEvent, PerPerson:
		return true
	default:
		return false
	}
}

// TransitionError wraps ErrInvalidTransition with the offending states.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewTransitionError[S ~string](from, to S) error {
	return &TransitionError{From: string(from), To: string(to)}
}
