package authz

import "errors"

// Authorization outcomes. Each is a distinct, caller-visible failure kind;
// the *CheckFailed and ManagerNotRetrieved variants mean the remote authority
// itself misbehaved, as opposed to the entity being absent.
var (
	ErrProjectNotFound     = errors.New("project does not exist")
	ErrProjectCheckFailed  = errors.New("project check failed")
	ErrEmployeeNotFound    = errors.New("employee does not exist")
	ErrEmployeeCheckFailed = errors.New("employee check failed")
	ErrManagerNotRetrieved = errors.New("manager cannot be retrieved")
	ErrAccessDenied        = errors.New("access denied")
)
