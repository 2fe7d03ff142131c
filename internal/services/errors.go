// Package services contains the business logic between the HTTP handlers
// and the repositories.
package services

import "errors"

// Validation errors. These map to 400 responses.
var (
	// ErrSelfParent is returned when a task names itself as parent
	ErrSelfParent = errors.New("a task cannot be its own parent")
	// ErrHierarchyCycle is returned when the candidate parent chain loops back to the task
	ErrHierarchyCycle = errors.New("cycle detected in task hierarchy")
	// ErrHierarchyTooDeep is returned when the stored parent chain does not terminate
	ErrHierarchyTooDeep = errors.New("task parent chain does not terminate")
	// ErrSelfLink is returned when a task is linked to itself
	ErrSelfLink = errors.New("cannot link a task to itself")
	// ErrDuplicateLink is returned when an identical link already exists
	ErrDuplicateLink = errors.New("an identical link already exists")
	// ErrDuplicateMember is returned when a user is added to a project twice
	ErrDuplicateMember = errors.New("user is already a member of the project")
)

// Business rule errors. These also map to 400 responses but carry a
// distinct slug so clients can tell them apart from malformed input.
var (
	// ErrTaskInProgress is returned when deleting a task that is being worked on
	ErrTaskInProgress = errors.New("cannot delete a task while it is in progress")
	// ErrNeedInProgress is returned when deleting a need that is being worked on
	ErrNeedInProgress = errors.New("cannot delete a need while it is in progress")
)

// IsValidationError reports whether err is one of the validation errors
func IsValidationError(err error) bool {
	return errors.Is(err, ErrSelfParent) ||
		errors.Is(err, ErrHierarchyCycle) ||
		errors.Is(err, ErrHierarchyTooDeep) ||
		errors.Is(err, ErrSelfLink) ||
		errors.Is(err, ErrDuplicateLink) ||
		errors.Is(err, ErrDuplicateMember)
}

// IsBusinessRuleError reports whether err is one of the business rule errors
func IsBusinessRuleError(err error) bool {
	return errors.Is(err, ErrTaskInProgress) || errors.Is(err, ErrNeedInProgress)
}
