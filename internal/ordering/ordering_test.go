package ordering

import (
	"net/http"
	"testing"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// section is a test model: index = position, value = entry name.
type section []string

// applyMove replays a MovePlan against in-memory sections the way a
// store would: shift bystanders, then place the moved entry.
func applyMove(t *testing.T, sections map[domain.Section]section, src domain.Section, srcPos int, plan MovePlan) {
	t.Helper()
	if plan.NoOp {
		return
	}
	moved := sections[src][srcPos]

	// snapshot old positions, then rebuild from shifted coordinates
	type placed struct {
		name string
		pos  int
	}
	next := map[domain.Section][]placed{}
	for sec, entries := range sections {
		for pos, name := range entries {
			if sec == src && pos == srcPos {
				continue // the moved entry is placed explicitly below
			}
			newPos := pos
			for _, sh := range plan.Shifts {
				if sh.Section == sec && sh.Contains(pos) {
					newPos += sh.Delta
				}
			}
			next[sec] = append(next[sec], placed{name, newPos})
		}
	}
	next[plan.Section] = append(next[plan.Section], placed{moved, plan.Position})

	for sec := range sections {
		delete(sections, sec)
	}
	for sec, entries := range next {
		out := make(section, len(entries))
		for _, p := range entries {
			require.GreaterOrEqual(t, p.pos, 0)
			require.Less(t, p.pos, len(entries))
			require.Empty(t, out[p.pos], "duplicate position %d in %q", p.pos, sec)
			out[p.pos] = p.name
		}
		sections[sec] = out
	}
}

func TestPlanInsert(t *testing.T) {
	assert.Equal(t, 0, PlanInsert(0))
	assert.Equal(t, 3, PlanInsert(3))
}

func TestPlanMoveSameSection(t *testing.T) {
	t.Run("move down", func(t *testing.T) {
		// [A B C], A -> index 2 => [B C A]
		sections := map[domain.Section]section{"todo": {"A", "B", "C"}}
		plan, err := PlanMove("todo", 0, 3, "todo", 2, 3)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 0, plan)
		assert.Equal(t, section{"B", "C", "A"}, sections["todo"])
	})

	t.Run("move up", func(t *testing.T) {
		// [A B C], C -> index 0 => [C A B]
		sections := map[domain.Section]section{"todo": {"A", "B", "C"}}
		plan, err := PlanMove("todo", 2, 3, "todo", 0, 3)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 2, plan)
		assert.Equal(t, section{"C", "A", "B"}, sections["todo"])
	})

	t.Run("middle to middle", func(t *testing.T) {
		sections := map[domain.Section]section{"todo": {"A", "B", "C", "D", "E"}}
		plan, err := PlanMove("todo", 3, 5, "todo", 1, 5)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 3, plan)
		assert.Equal(t, section{"A", "D", "B", "C", "E"}, sections["todo"])
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		plan, err := PlanMove("todo", 1, 3, "todo", 1, 3)
		require.NoError(t, err)
		assert.True(t, plan.NoOp)
		assert.Empty(t, plan.Shifts)
		assert.Equal(t, 1, plan.Position)
	})

	t.Run("index past last slot is rejected", func(t *testing.T) {
		_, err := PlanMove("todo", 0, 3, "todo", 3, 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("negative index is rejected", func(t *testing.T) {
		_, err := PlanMove("todo", 0, 3, "todo", -1, 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})
}

func TestPlanMoveCrossSection(t *testing.T) {
	t.Run("into occupied slot", func(t *testing.T) {
		// src [A B], dst [X]; A -> dst index 0 => src [B], dst [A X]
		sections := map[domain.Section]section{"todo": {"A", "B"}, "done": {"X"}}
		plan, err := PlanMove("todo", 0, 2, "done", 0, 1)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 0, plan)
		assert.Equal(t, section{"B"}, sections["todo"])
		assert.Equal(t, section{"A", "X"}, sections["done"])
	})

	t.Run("append to target section", func(t *testing.T) {
		sections := map[domain.Section]section{"todo": {"A", "B"}, "done": {"X"}}
		plan, err := PlanMove("todo", 1, 2, "done", 1, 1)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 1, plan)
		assert.Equal(t, section{"A"}, sections["todo"])
		assert.Equal(t, section{"X", "B"}, sections["done"])
	})

	t.Run("into empty section", func(t *testing.T) {
		sections := map[domain.Section]section{"todo": {"A"}, "done": {}}
		plan, err := PlanMove("todo", 0, 1, "done", 0, 0)
		require.NoError(t, err)
		applyMove(t, sections, "todo", 0, plan)
		assert.Empty(t, sections["todo"])
		assert.Equal(t, section{"A"}, sections["done"])
	})

	t.Run("index past target count is rejected", func(t *testing.T) {
		_, err := PlanMove("todo", 0, 2, "done", 2, 1)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})
}

func TestPlanDelete(t *testing.T) {
	// [A B C], delete B => positions 2.. step down
	shifts := PlanDelete("todo", 1)
	require.Len(t, shifts, 1)
	sh := shifts[0]
	assert.Equal(t, -1, sh.Delta)
	assert.False(t, sh.Contains(0))
	assert.False(t, sh.Contains(1))
	assert.True(t, sh.Contains(2))
	assert.True(t, sh.Contains(100))
}

func TestValidateReorder(t *testing.T) {
	current := []domain.EntryId{"a", "b", "c"}

	t.Run("valid permutation", func(t *testing.T) {
		assert.NoError(t, ValidateReorder(current, []domain.EntryId{"c", "a", "b"}))
	})

	t.Run("identity permutation", func(t *testing.T) {
		assert.NoError(t, ValidateReorder(current, []domain.EntryId{"a", "b", "c"}))
	})

	t.Run("missing id", func(t *testing.T) {
		err := ValidateReorder(current, []domain.EntryId{"a", "b"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("foreign id", func(t *testing.T) {
		err := ValidateReorder(current, []domain.EntryId{"a", "b", "z"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := ValidateReorder(current, []domain.EntryId{"a", "b", "b"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("empty section", func(t *testing.T) {
		assert.NoError(t, ValidateReorder(nil, nil))
	})
}

func TestCheckDense(t *testing.T) {
	assert.NoError(t, CheckDense(nil))
	assert.NoError(t, CheckDense([]int{0}))
	assert.NoError(t, CheckDense([]int{2, 0, 1}))
	assert.Error(t, CheckDense([]int{0, 2}), "gap")
	assert.Error(t, CheckDense([]int{0, 1, 1}), "duplicate")
	assert.Error(t, CheckDense([]int{1, 2, 3}), "not zero-based")
}
