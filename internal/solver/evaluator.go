package solver

// HardPenalty is the fixed weight added per violated hard constraint
// occurrence (disallowed day, employee double-booking, undersized room,
// room type mismatch, student double-booking).
const HardPenalty = 100

type employeeDateKey struct {
	EmployeeID int
	DateID     int
}

type studentDateKey struct {
	DateID     int
	CourseID   int
	SemesterID int
}

// Evaluate computes the non-negative penalty of a structurally valid
// chromosome by walking each block once, in index order, and accumulating
// per-violation weights. It never fails: structural validity and referential
// integrity are invariants established upstream (internal/loader, the
// population operators), so Evaluate trusts them rather than re-checking.
func Evaluate(problem *Problem, chromosome Chromosome) int {
	penalty := 0

	employeePlannedAt := make(map[employeeDateKey]struct{})
	dateByStudentGroup := make(map[studentDateKey]struct{})

	for i, gene := range chromosome {
		block := problem.Blocks[i]
		slot := problem.Slots[gene]

		// 1. Day disallowed.
		if _, disallowed := block.DisallowedDayIDs[slot.DayID]; disallowed {
			penalty += HardPenalty
		}

		for _, employeeID := range block.EmployeeIDs {
			key := employeeDateKey{EmployeeID: employeeID, DateID: slot.DateID}

			// 2. Employee double-booking.
			if _, already := employeePlannedAt[key]; already {
				penalty += HardPenalty
			}
			employeePlannedAt[key] = struct{}{}

			// 3. Employee dislike.
			dislikeKey := DislikeKey{EmployeeID: employeeID, DateID: slot.DateID}
			if weight, disliked := problem.Dislikes[dislikeKey]; disliked {
				penalty += weight
			}
		}

		// 4. Room capacity.
		if slot.RoomParticipantSizeOrdinal < block.ParticipantSizeOrdinal {
			penalty += HardPenalty
		}

		// 5. Room type mismatch.
		if slot.RoomTypeID != block.RoomTypeID {
			penalty += HardPenalty
		}

		// 6. Student double-booking.
		for courseID, semesters := range block.Participants {
			for semesterID := range semesters {
				key := studentDateKey{DateID: slot.DateID, CourseID: courseID, SemesterID: semesterID}
				if _, already := dateByStudentGroup[key]; already {
					penalty += HardPenalty
				}
				dateByStudentGroup[key] = struct{}{}
			}
		}
	}

	return penalty
}
