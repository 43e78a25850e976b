package pipeline

import "errors"

// ErrEmptyCorpus is returned when no document in a collection yields a
// usable section. No report is written.
var ErrEmptyCorpus = errors.New("no usable sections in collection")
