package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation clashes with another in-flight operation,
// e.g. a daily price update cycle that is already running.
var ErrConflict = errors.New("conflicting operation in progress")

// ErrRateUnavailable indicates that a single resolution tier could not produce a
// usable exchange rate (provider unreachable, missing key in the response, no
// persisted row). The resolver treats it as a signal to try the next tier.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
