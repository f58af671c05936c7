// Package services contains the client's stateful components: the credit
// store, the upload session with its admission policy, the payment session,
// the file listing cache, and the profile sync.
package services

import (
	"fmt"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
)

// ReasonCode identifies why a batch was refused admission.
type ReasonCode string

const (
	ReasonEmptyBatch          ReasonCode = "EMPTY_BATCH"
	ReasonBatchTooLarge       ReasonCode = "BATCH_TOO_LARGE"
	ReasonNoCredits           ReasonCode = "NO_CREDITS"
	ReasonInsufficientCredits ReasonCode = "INSUFFICIENT_CREDITS"
)

// Message renders the user-facing text for a rejection.
func (r ReasonCode) Message() string {
	switch r {
	case ReasonEmptyBatch:
		return "Please select at least one file to upload."
	case ReasonBatchTooLarge:
		return fmt.Sprintf("You can only upload a maximum of %d files at once.", common.MaxBatchFiles)
	case ReasonNoCredits:
		return "You have no upload credits left. Purchase a plan to continue."
	case ReasonInsufficientCredits:
		return "Not enough credits for this batch."
	default:
		return string(r)
	}
}

// Credits is a point-in-time view of the balance. Known is false until the
// store completes its first fetch; admission rules that compare against the
// balance only bind once it is known.
type Credits struct {
	Known     bool
	Remaining int
}

// Decision is the admission verdict for a candidate batch.
type Decision struct {
	Allowed bool
	Reason  ReasonCode
}

// CanSubmit decides whether a batch may be submitted given the current
// balance. Pure; rules are evaluated in order and the first failing one wins:
//
//  1. empty batch
//  2. batch over the cap
//  3. known balance is zero or less
//  4. batch larger than the known balance
func CanSubmit(batch []models.PendingFile, credits Credits) Decision {
	switch {
	case len(batch) == 0:
		return Decision{Reason: ReasonEmptyBatch}
	case len(batch) > common.MaxBatchFiles:
		return Decision{Reason: ReasonBatchTooLarge}
	case credits.Known && credits.Remaining <= 0:
		return Decision{Reason: ReasonNoCredits}
	case credits.Known && len(batch) > credits.Remaining:
		return Decision{Reason: ReasonInsufficientCredits}
	}
	return Decision{Allowed: true}
}

// Rejection is an admission refusal carried as an error value. It is a
// policy outcome, not a failure: callers display it and never log it as an
// error.
type Rejection struct {
	Reason ReasonCode
}

func (r *Rejection) Error() string {
	return r.Reason.Message()
}
