package epistemic

import "fmt"

// MalformedPropositionError reports a proposition string whose kind prefix
// is not recognized. It is raised when the string is parsed, never during
// evaluation, so a typo can't silently evaluate to false and corrupt an
// elimination.
type MalformedPropositionError struct {
	Input string
}

func (e *MalformedPropositionError) Error() string {
	return fmt.Sprintf("malformed proposition %q: unrecognized kind prefix", e.Input)
}

// CatalogRecordError reports a seed record that is missing required fields.
// Seeding validates the whole batch before adding any world, so a batch
// containing a bad record leaves the model untouched.
type CatalogRecordError struct {
	Index  int
	Reason string
}

func (e *CatalogRecordError) Error() string {
	return fmt.Sprintf("catalog record %d: %s", e.Index, e.Reason)
}
