package dday

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/clintrovert/dday-labeler/pkg/types"
)

// MatchError reports a task-identifier candidate whose numeric part could
// not be parsed. With base-10 digits this only happens on int overflow.
type MatchError struct {
	Text string
	Err  error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("failed to parse task number in %q: %v", e.Text, e.Err)
}

func (e *MatchError) Unwrap() error { return e.Err }

// Match scans text for the first occurrence of any registered prefix
// followed by '-' or whitespace and digits, case-insensitively. It returns
// nil, nil when nothing matches; a missing identifier is a normal outcome,
// not an error. The returned prefix is upper-cased.
//
// Overlapping prefixes are resolved longest-first so the result does not
// depend on discovery enumeration order.
func Match(text string, prefixes []string) (*types.TaskIdentifier, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}

	pattern, err := regexp.Compile(buildPattern(prefixes))
	if err != nil {
		return nil, fmt.Errorf("failed to build task id pattern: %w", err)
	}

	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	number, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, &MatchError{Text: m[0], Err: err}
	}

	return &types.TaskIdentifier{
		Prefix: strings.ToUpper(m[1]),
		Number: number,
	}, nil
}

// buildPattern assembles a single alternation over all prefixes. Each prefix
// is literal-escaped so store-configured prefixes cannot inject regexp
// metacharacters.
func buildPattern(prefixes []string) string {
	ordered := make([]string, len(prefixes))
	copy(ordered, prefixes)
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	escaped := make([]string, len(ordered))
	for i, prefix := range ordered {
		escaped[i] = regexp.QuoteMeta(prefix)
	}

	return `(?i)(` + strings.Join(escaped, "|") + `)[-\s](\d+)`
}
