// Package ordering computes the position deltas needed to insert, move,
// delete or bulk-reorder entries while keeping every (board, section)
// position sequence dense, zero-based and duplicate-free.
//
// The package is pure: it never touches storage. A store reads current
// state inside a transaction, asks this package for a plan, and applies
// the plan atomically. Plans must never be reused across transactions.
package ordering

import (
	"fmt"
	"sort"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
)

// NoUpper marks a shift range open on the right.
const NoUpper = -1

// Shift is one contiguous run of positions inside a single section that
// must move by Delta. The moved/deleted entry itself is never part of
// a shift.
type Shift struct {
	Section domain.Section
	From    int // inclusive
	To      int // inclusive, NoUpper = unbounded
	Delta   int
}

// Contains reports whether pos falls inside the shift range.
func (s Shift) Contains(pos int) bool {
	if pos < s.From {
		return false
	}
	return s.To == NoUpper || pos <= s.To
}

// MovePlan is the full outcome of a Move: the shifts for bystander
// entries plus the moved entry's final section and position.
type MovePlan struct {
	Shifts   []Shift
	Section  domain.Section
	Position int
	NoOp     bool
}

// PlanInsert returns the position of a newly appended entry given the
// current entry count of the target section.
func PlanInsert(count int) int {
	return count
}

// PlanMove computes the shifts for moving an entry from srcPos in src to
// dstPos in dst. srcCount and dstCount are the current entry counts of
// the two sections; for a same-section move they refer to the same
// section and must be equal.
//
// dstPos bounds: same-section moves accept [0, srcCount-1] (the entry
// already occupies a slot), cross-section moves accept [0, dstCount].
// Anything outside is InvalidArgument, never clamped.
func PlanMove(src domain.Section, srcPos, srcCount int, dst domain.Section, dstPos, dstCount int) (MovePlan, error) {
	if src == dst {
		if dstPos < 0 || dstPos > srcCount-1 {
			return MovePlan{}, internal_errors.InvalidArgument(
				fmt.Sprintf("target index %d out of range [0, %d]", dstPos, srcCount-1))
		}
		if dstPos == srcPos {
			return MovePlan{Section: src, Position: srcPos, NoOp: true}, nil
		}
		if srcPos < dstPos {
			// moving down: (srcPos, dstPos] steps up one slot
			return MovePlan{
				Shifts:   []Shift{{Section: src, From: srcPos + 1, To: dstPos, Delta: -1}},
				Section:  src,
				Position: dstPos,
			}, nil
		}
		// moving up: [dstPos, srcPos) steps down one slot
		return MovePlan{
			Shifts:   []Shift{{Section: src, From: dstPos, To: srcPos - 1, Delta: +1}},
			Section:  src,
			Position: dstPos,
		}, nil
	}

	if dstPos < 0 || dstPos > dstCount {
		return MovePlan{}, internal_errors.InvalidArgument(
			fmt.Sprintf("target index %d out of range [0, %d]", dstPos, dstCount))
	}
	return MovePlan{
		Shifts: []Shift{
			{Section: src, From: srcPos + 1, To: NoUpper, Delta: -1}, // close the gap left behind
			{Section: dst, From: dstPos, To: NoUpper, Delta: +1},     // open a slot
		},
		Section:  dst,
		Position: dstPos,
	}, nil
}

// PlanDelete computes the compaction shift after removing the entry that
// held pos in section.
func PlanDelete(section domain.Section, pos int) []Shift {
	return []Shift{{Section: section, From: pos + 1, To: NoUpper, Delta: -1}}
}

// ValidateReorder checks that ordered is exactly a permutation of
// current: same length, no foreign ids, no duplicates.
func ValidateReorder(current, ordered []domain.EntryId) error {
	if len(ordered) != len(current) {
		return internal_errors.InvalidArgument(
			fmt.Sprintf("ordered id list has %d entries, section has %d", len(ordered), len(current)))
	}
	remaining := make(map[domain.EntryId]struct{}, len(current))
	for _, id := range current {
		remaining[id] = struct{}{}
	}
	for _, id := range ordered {
		if _, ok := remaining[id]; !ok {
			return internal_errors.InvalidArgument("entry " + id + " does not belong to the section (or is duplicated)")
		}
		delete(remaining, id)
	}
	return nil
}

// CheckDense verifies that positions are exactly {0..len-1}.
// Used by stores and tests to assert the ordering invariant.
func CheckDense(positions []int) error {
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)
	for i, p := range sorted {
		if p != i {
			return fmt.Errorf("positions not dense: expected %d at rank %d, got %d", i, i, p)
		}
	}
	return nil
}
