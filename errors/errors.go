// Package errors wraps github.com/cockroachdb/errors for RecruitIQ.
//
// Errors carry stack traces, wrap context and user-facing hints. The CLI
// prints hints under the error line, so a hint should say what to run next:
//
//	if err := store.SaveBatch(ctx, batch); err != nil {
//	    return errors.WithHint(errors.Wrap(err, "save postings"), "run 'recruitiq init' first")
//	}
//
// Callers classify failures with the sentinels below and errors.Is, which
// keeps working through any number of Wrap layers.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithStack = crdb.WithStack
	Mark      = crdb.Mark
)

// User-facing context
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
	GetAllHints        = crdb.GetAllHints
	GetAllDetails      = crdb.GetAllDetails
)

var (
	Is = crdb.Is
	As = crdb.As
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

var (
	// ErrNotFound marks lookups that matched nothing (config keys, postings)
	ErrNotFound = New("not found")

	// ErrInvalidRequest marks bad user input: flags, filters, report kinds
	ErrInvalidRequest = New("invalid request")
)

func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFoundError returns ErrNotFound wrapped with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidRequestError returns ErrInvalidRequest wrapped with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}
