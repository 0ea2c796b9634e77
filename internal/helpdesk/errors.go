package helpdesk

import "errors"

// Service-level failures. Lock, block and ownership mismatches all collapse
// into the not-found errors so a caller can't probe which condition failed.
var (
	ErrProjectNotFound = errors.New("project not found or locked")
	ErrDuplicateName   = errors.New("project name already exists")
	ErrRequestNotFound = errors.New("request not found")
)
