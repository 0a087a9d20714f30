package pricing

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// Event is an operator-driven lifecycle action on an existing transaction.
type Event string

const (
	EventValidate      Event = "VALIDATE"
	EventCancel        Event = "CANCEL"
	EventMarkWithdrawn Event = "MARK_WITHDRAWN"
)

// Transition applies a lifecycle event to a transaction and returns the
// updated copy. Guards:
//
//	PENDING   --VALIDATE-------> VALIDATED  (stamps ValidatedAt)
//	PENDING   --CANCEL---------> CANCELLED
//	VALIDATED --MARK_WITHDRAWN-> WITHDRAWN  (transfers only, stamps WithdrawnAt)
//
// Any other combination returns an InvalidTransitionError and the input
// unchanged. Only the caller can make the check-and-apply atomic against
// storage; Transition itself is pure.
func Transition(txn domain.Transaction, event Event, now time.Time) (domain.Transaction, error) {
	switch event {
	case EventValidate:
		if txn.Status != domain.StatusPending {
			return txn, &InvalidTransitionError{From: txn.Status, Event: event}
		}
		txn.Status = domain.StatusValidated
		txn.ValidatedAt = &now
		return txn, nil

	case EventCancel:
		if txn.Status != domain.StatusPending {
			return txn, &InvalidTransitionError{From: txn.Status, Event: event}
		}
		txn.Status = domain.StatusCancelled
		return txn, nil

	case EventMarkWithdrawn:
		if txn.Status != domain.StatusValidated || txn.Kind != domain.Transfer {
			return txn, &InvalidTransitionError{From: txn.Status, Event: event}
		}
		txn.Status = domain.StatusWithdrawn
		txn.WithdrawnAt = &now
		return txn, nil

	default:
		return txn, &InvalidTransitionError{From: txn.Status, Event: event}
	}
}
