package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUpstreamUnavailable indicates that an external data provider could not be
// reached or returned an unusable response. Callers recover locally from this
// (cached value, last known good, default); it is never surfaced to a visitor.
var ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
