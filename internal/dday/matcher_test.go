package dday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clintrovert/dday-labeler/pkg/types"
)

func TestMatchExtractsTaskID(t *testing.T) {
	id, err := Match("Fix login bug TASK-42", []string{"TASK"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, types.TaskIdentifier{Prefix: "TASK", Number: 42}, *id)
	assert.Equal(t, "TASK-42", id.String())
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	id, err := Match("task-7: tidy up config", []string{"TASK"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "TASK", id.Prefix)
	assert.Equal(t, 7, id.Number)
}

func TestMatchAcceptsWhitespaceSeparator(t *testing.T) {
	id, err := Match("TASK 123 follow-up", []string{"TASK"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "TASK-123", id.String())
}

func TestMatchReturnsFirstOccurrence(t *testing.T) {
	id, err := Match("BUG-3 duplicates TASK-42", []string{"TASK", "BUG"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "BUG-3", id.String())
}

func TestMatchNoRegisteredPrefix(t *testing.T) {
	id, err := Match("Fix login bug", []string{"TASK"})
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = Match("OTHER-42 something", []string{"TASK"})
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestMatchEmptyPrefixSet(t *testing.T) {
	id, err := Match("TASK-42", nil)
	require.NoError(t, err)
	assert.Nil(t, id)
}

// Overlapping prefixes resolve longest-first, not in enumeration order.
func TestMatchPrefersLongestPrefix(t *testing.T) {
	id, err := Match("TASKX-9 tweak", []string{"TASK", "TASKX"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "TASKX-9", id.String())

	// Same input, reversed registration order, same result.
	id, err = Match("TASKX-9 tweak", []string{"TASKX", "TASK"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "TASKX-9", id.String())
}

// A prefix containing regexp metacharacters must match literally.
func TestMatchEscapesPrefixMetacharacters(t *testing.T) {
	id, err := Match("C++-5 compiler task", []string{"C++"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "C++", id.Prefix)
	assert.Equal(t, 5, id.Number)

	// "C.." must not match "C++" text via the dot metacharacter.
	id, err = Match("CAB-5 compiler task", []string{"C.."})
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestMatchOverflowingNumber(t *testing.T) {
	_, err := Match("TASK-99999999999999999999999999", []string{"TASK"})
	require.Error(t, err)

	var matchErr *MatchError
	assert.ErrorAs(t, err, &matchErr)
}
