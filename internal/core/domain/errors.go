package domain

import "errors"

// ErrValidation marks a request that is well-formed but carries field values
// the core rejects (missing required fields, stars out of range). Distinct
// from ErrReviewExists, which is a business-rule conflict.
var ErrValidation = errors.New("validation failed")
