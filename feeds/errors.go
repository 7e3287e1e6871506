package feeds

import "fmt"

// UnsupportedSourceKindError reports a normalizer call with a source kind it
// has no mapping for. It is fatal to that single card only; callers skip the
// item and continue.
type UnsupportedSourceKindError struct {
	Kind string
}

func (e *UnsupportedSourceKindError) Error() string {
	return fmt.Sprintf("unsupported source kind: %s", e.Kind)
}

// UnknownAlgorithmError reports a dispatch against an unregistered feature
// tag. There is no partial result; it propagates to the caller.
type UnknownAlgorithmError struct {
	Tag string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown feed algorithm: %s", e.Tag)
}
