package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// ValidationError names the pricing input that is missing or non-positive.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrValidation }

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// RateNotFoundError signals that no active rate, direct or reciprocal, is
// configured between two distinct currencies. Callers must block creation;
// a silent rate of 1 (or 0) is never an acceptable fallback.
type RateNotFoundError struct {
	SourceCurrencyID string
	TargetCurrencyID string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no exchange rate configured for %s -> %s", e.SourceCurrencyID, e.TargetCurrencyID)
}

// NoTierMatchError signals a tiered fee rule with no tier covering the amount.
type NoTierMatchError struct {
	Amount decimal.Decimal
}

func (e *NoTierMatchError) Error() string {
	return fmt.Sprintf("no fee tier covers amount %s", e.Amount.String())
}

func (e *NoTierMatchError) Unwrap() error { return apperrors.ErrValidation }

// InvalidTransitionError signals a disallowed lifecycle transition. The
// transaction record is left untouched.
type InvalidTransitionError struct {
	From  domain.TransactionStatus
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot apply event %s to transaction in status %s", e.Event, e.From)
}
