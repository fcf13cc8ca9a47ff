package app

import "errors"

// Manual trigger precondition failures are reported to the caller; none of
// these are fatal to the process.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrNoRecipients   = errors.New("event has no valid recipients")
	ErrNoDate         = errors.New("event date is not set")
	ErrSendFailed     = errors.New("reminder could not be delivered to any recipient")
	ErrPassInProgress = errors.New("a reminder pass is already running")
)
