package domain

import "errors"

// ProviderRequestStatus is the lifecycle state of a provider upgrade request
// as shown to the user. The empty value means no request exists yet.
type ProviderRequestStatus string

const (
	ProviderRequestNone     ProviderRequestStatus = ""
	ProviderRequestPending  ProviderRequestStatus = "PENDING"
	ProviderRequestApproved ProviderRequestStatus = "APPROVED"
	ProviderRequestRejected ProviderRequestStatus = "REJECTED"
)

// providerRequestTransitions defines the lifecycle: NONE → PENDING →
// {APPROVED, REJECTED}. Approve/reject happen server-side; the client only
// uses this to decide what the current state allows.
var providerRequestTransitions = map[ProviderRequestStatus][]ProviderRequestStatus{
	ProviderRequestNone:    {ProviderRequestPending},
	ProviderRequestPending: {ProviderRequestApproved, ProviderRequestRejected},
}

var ErrProviderRequestExists = errors.New("a provider request was already submitted")

// CanTransitionTo reports whether moving from s to next is a valid lifecycle step.
func (s ProviderRequestStatus) CanTransitionTo(next ProviderRequestStatus) bool {
	for _, allowed := range providerRequestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanSubmit reports whether a new request may be submitted from this state.
// Only NONE allows it; PENDING is view-only and the rest are terminal for
// display (an approved request changes roles on the next login, not here).
func (s ProviderRequestStatus) CanSubmit() bool {
	return s == ProviderRequestNone
}

// Terminal reports whether the state admits no further transition.
func (s ProviderRequestStatus) Terminal() bool {
	return len(providerRequestTransitions[s]) == 0
}

// ProviderRequest is a user's application for the PROVIDER role.
type ProviderRequest struct {
	ID        int64                 `json:"id"`
	UserID    int64                 `json:"userId"`
	Status    ProviderRequestStatus `json:"status"`
	CreatedAt LocalTime             `json:"createdAt"`
}
