package report

import (
	"fmt"
	"strings"
)

// SchemaError reports a payload that parsed as JSON but does not have the
// shape the derivers rely on.
type SchemaError struct {
	Report   string
	Problems []string
	Err      error
}

func (e *SchemaError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("%s report: invalid schema: %s", e.Report, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("%s report: invalid schema: %v", e.Report, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
