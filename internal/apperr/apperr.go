// Package apperr defines the error taxonomy shared by the footprint, meal and
// tracking services. Each concrete type matches a sentinel through errors.Is so
// transports can map failures without depending on the concrete types.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAggregationConsistency = errors.New("aggregation consistency")
)

// NotFoundError reports a referenced ingredient, meal or other record that does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound is shorthand for constructing a NotFoundError.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidInputError reports a malformed request such as an empty line-item list.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InvalidInputError from a format string.
func Invalid(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// AggregationConsistencyError reports that a meal log and its weekly tracker
// update could not be committed together. The transaction was rolled back, so
// the caller may retry.
type AggregationConsistencyError struct {
	UserID uint
	MealID uint
	Date   string
	Err    error
}

func (e *AggregationConsistencyError) Error() string {
	return fmt.Sprintf("log meal %d for user %d on %s: %v", e.MealID, e.UserID, e.Date, e.Err)
}

func (e *AggregationConsistencyError) Unwrap() error {
	return e.Err
}

func (e *AggregationConsistencyError) Is(target error) bool {
	return target == ErrAggregationConsistency
}
