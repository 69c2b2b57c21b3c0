package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskList(t *testing.T) {
	var (
		tl    TaskList
		order []string
	)
	assert.True(t, tl.Empty())
	// an empty list never reports complete, a stalled driver loop is louder
	// than a silently skipped pipeline
	assert.False(t, tl.DoAvailable())

	gate := Incomplete
	tl.AddTask("A", func() TaskStatus {
		order = append(order, "A")
		return Complete
	})
	tl.AddTask("B", func() TaskStatus {
		order = append(order, "B")
		return gate
	})
	tl.AddTask("C", func() TaskStatus {
		order = append(order, "C")
		return Complete
	})
	assert.False(t, tl.Empty())

	// B stalls: C must not run, A must not rerun
	assert.False(t, tl.DoAvailable())
	assert.False(t, tl.DoAvailable())
	assert.Equal(t, []string{"A", "B", "B"}, order)

	// B unblocks: C runs and the list completes
	gate = Complete
	assert.True(t, tl.DoAvailable())
	assert.Equal(t, []string{"A", "B", "B", "B", "C"}, order)

	// completed stages are not re-invoked
	assert.True(t, tl.DoAvailable())
	assert.Equal(t, []string{"A", "B", "B", "B", "C"}, order)

	// Reset starts a fresh cycle
	tl.Reset()
	order = nil
	assert.True(t, tl.DoAvailable())
	assert.Equal(t, []string{"A", "B", "C"}, order)
}
