// Package dday holds the pure pieces of the labeler: due-date math, the
// task-identifier matcher, and the label color table.
package dday

import (
	"fmt"
	"time"
)

// LabelPrefix is shared by every label this system manages. Reconciliation
// removes all labels carrying it before attaching a fresh one.
const LabelPrefix = "D-"

// ReferenceTimezone is the fixed zone every calendar-date comparison happens
// in. A fixed offset is used on purpose: KST has no daylight saving.
var ReferenceTimezone = time.FixedZone("Asia/Seoul", 9*60*60)

// Layouts accepted for due dates, roughly what Notion emits: full RFC3339,
// a naive datetime, and a bare date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ComputeLabel derives the D-Day label for a due date. Empty or unparseable
// input yields an empty string, meaning no label should be attached.
func ComputeLabel(dueDate string) string {
	return computeLabelAt(dueDate, time.Now().In(ReferenceTimezone))
}

func computeLabelAt(dueDate string, now time.Time) string {
	due, ok := parseDueDate(dueDate)
	if !ok {
		return ""
	}

	now = now.In(ReferenceTimezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, ReferenceTimezone)

	dayDiff := int(due.Sub(today).Hours() / 24)
	if dayDiff <= 0 {
		return LabelPrefix + "0"
	}
	return fmt.Sprintf("%s%d", LabelPrefix, dayDiff)
}

// parseDueDate parses an ISO-8601 due date and pins its calendar date to the
// reference timezone. Wall-clock values are reinterpreted, not converted: a
// date written as 2024-05-10 stays May 10th even if it carried a non-KST
// offset. Returns false when the string matches no known layout.
func parseDueDate(s string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		t, err := time.ParseInLocation(layout, s, ReferenceTimezone)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ReferenceTimezone), true
	}
	return time.Time{}, false
}
