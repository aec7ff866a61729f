package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrMalformedDocument matches every MalformedDocumentError via errors.Is.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError reports a workbook that lacks an expected sheet or
// has the wrong number of columns. It aborts the whole ratio batch.
type MalformedDocumentError struct {
	Document   string // DocumentBalance or DocumentIncome
	Sheet      string
	Reason     string
	Suggestion string // closest existing sheet name, if any
	Err        error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s workbook", e.Document)
	if e.Sheet != "" {
		fmt.Fprintf(&b, ": sheet %q", e.Sheet)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrMalformedDocument) true.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// maxSuggestionDistance bounds how different a sheet name may be and still
// be offered as a suggestion.
const maxSuggestionDistance = 4

// closestSheet returns the sheet name nearest to want, or "" when none is
// close enough.
func closestSheet(want string, sheets []string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	target := strings.ToLower(want)
	for _, s := range sheets {
		dist := levenshtein.ComputeDistance(target, strings.ToLower(s))
		if dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best
}
