package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

func NewFieldValidationError(field, msg string) error {
	return &ValidationError{Msg: fmt.Sprintf("%s: %s", field, msg)}
}

var (
	ErrInvalidBucketType      = NewValidationError("Invalid bucket type")
	ErrInvalidExpenseCategory = NewValidationError("Invalid expense category")
	ErrInvalidGoalCategory    = NewValidationError("Invalid goal category")
	ErrInvalidMonth           = NewValidationError("Invalid month, expected format YYYY-MM")
	ErrNegativeAmount         = NewValidationError("Amount must not be negative")
	ErrAmountTooLarge         = NewValidationError("Amount must be less than 1000000000000")
	ErrUnknownLinkedBucket    = NewValidationError("Linked bucket does not exist")
)

var (
	ErrBucketNotFound  = errors.New("bucket not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrGoalNotFound    = errors.New("goal not found")
)

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

// ErrOrNil returns ve when at least one error was collected.
func (ve *ValidationErrors) ErrOrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// Messages returns the collected error messages in order.
func (ve *ValidationErrors) Messages() []string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = err.Error()
	}
	return messages
}

func (ve *ValidationErrors) Unwrap() []error {
	return ve.Errors
}
