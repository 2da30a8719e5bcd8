package core

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision(lending), or ErrorDecision(err).
type DecisionResult struct {
	Outcome string              // "idempotent", "success", or "error"
	Lending recordstore.Lending // only meaningful for success decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision creates a DecisionResult carrying the lending state to write.
func SuccessDecision(lending recordstore.Lending) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Lending: lending,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasLendingToSave returns true if the decision requires writing the lending columns.
func (r DecisionResult) HasLendingToSave() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if nothing needs to change.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
