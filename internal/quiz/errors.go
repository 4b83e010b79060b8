package quiz

import "errors"

// ErrFetchFailed indicates the question source was unreachable or returned a
// non-success response. The session stays valid for a retry.
var ErrFetchFailed = errors.New("question fetch failed")

// ErrScoreFetchFailed indicates the score service was unreachable or returned
// a non-success response. The session stays valid for a retry.
var ErrScoreFetchFailed = errors.New("score fetch failed")

// ErrInvalidTransition indicates an operation invoked outside its legal phase.
var ErrInvalidTransition = errors.New("operation not valid in current phase")

// ErrDuplicateRecord indicates a re-submission for an already-recorded ordinal.
var ErrDuplicateRecord = errors.New("answer already recorded for this ordinal")
