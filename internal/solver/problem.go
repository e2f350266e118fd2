// Package solver implements the gene representation, fitness evaluator and
// evolutionary search loop that assign teaching blocks to (date, room)
// slots. Everything here operates on dense integer indices only; translating
// store rows into those indices is internal/loader's job.
package solver

import (
	"fmt"

	"github.com/fhw-wedel/timetable-solver/pkg/errors"
)

// Block is one teaching unit to schedule: a single weekly occurrence of an
// event. An event with WeeklyBlocks=k contributes k Blocks, all pointing at
// the same constraints.
type Block struct {
	EventID int
	// EmployeeIDs holds every employee who must teach this block.
	EmployeeIDs []int
	// Participants maps course_id -> set of semester_id attending this block.
	Participants map[int]map[int]struct{}
	// DisallowedDayIDs is the set of day_id values this block may not land on.
	DisallowedDayIDs map[int]struct{}
	RoomTypeID             int
	ParticipantSizeOrdinal int
}

// Slot is a bookable (date, room) pair, the alphabet a gene selects from.
type Slot struct {
	DateID                     int
	DayID                      int
	TimeSlotID                 int
	RoomID                     int
	RoomParticipantSizeOrdinal int
	RoomTypeID                 int
}

// DislikeKey identifies one employee-dislikes-date entry.
type DislikeKey struct {
	EmployeeID int
	DateID     int
}

// Problem is the immutable, pre-materialised search space for one run: a
// fixed BLOCKS/SLOTS pair plus the dislike lookup, shared read-only across
// every fitness evaluation in the population.
type Problem struct {
	Blocks   []Block
	Slots    []Slot
	Dislikes map[DislikeKey]int
}

// NewProblem validates the BLOCKS ≤ SLOTS invariant and returns a ready
// Problem, or an InfeasibleInstance error if no feasible assignment can
// exist (more blocks than slots to hold them).
func NewProblem(blocks []Block, slots []Slot, dislikes map[DislikeKey]int) (*Problem, error) {
	if len(blocks) > len(slots) {
		return nil, errors.Clone(errors.ErrInfeasible,
			fmt.Sprintf("blocks exceed available slots: %d blocks, %d slots", len(blocks), len(slots)))
	}
	if dislikes == nil {
		dislikes = map[DislikeKey]int{}
	}
	return &Problem{Blocks: blocks, Slots: slots, Dislikes: dislikes}, nil
}
