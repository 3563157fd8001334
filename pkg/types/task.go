package types

import (
	"fmt"
)

// PrefixEntry maps a unique-ID prefix to the Notion database and property
// that owns it. One database may contribute several entries, one per
// unique_id property. Entries are rebuilt on every run and never persisted.
type PrefixEntry struct {
	Prefix       string
	DatabaseID   string
	PropertyName string
}

// TaskIdentifier is a task reference extracted from free-form text,
// e.g. "TASK-42". The prefix is always upper-cased.
type TaskIdentifier struct {
	Prefix string
	Number int
}

// String renders the identifier in its canonical "PREFIX-42" form.
func (t TaskIdentifier) String() string {
	return fmt.Sprintf("%s-%d", t.Prefix, t.Number)
}

// TaskPage is the slice of a Notion page the labeler cares about: the page
// identity and its due date. DueDate is an RFC3339 string, empty when the
// page has no usable date.
type TaskPage struct {
	PageID  string
	DueDate string
}
