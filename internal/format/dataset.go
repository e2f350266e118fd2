// Package format turns a completed solver.Outcome back into human-readable
// tables. It is the downstream collaborator spec.md §6 leaves abstract:
// the Loader result tells it how to resolve a slot/block index pair back to
// day/time/room/event names; this package only arranges and sorts rows.
package format

import (
	"fmt"
	"sort"

	"github.com/fhw-wedel/timetable-solver/internal/loader"
	"github.com/fhw-wedel/timetable-solver/internal/solver"
	"github.com/fhw-wedel/timetable-solver/pkg/export"
)

// Row is one resolved (day, time, room, event) cell, ready for rendering.
type Row struct {
	DayName    string
	DayOrdinal int
	TimeStart  string
	TimeEnd    string
	RoomName   string
	EventName  string
	Semesters  []int
}

const (
	headerDay       = "Day"
	headerTime      = "Time"
	headerRoom      = "Room"
	headerEvent     = "Event"
	headerSemesters = "Semesters"
)

// BuildRows resolves outcome.Best against result's lookup metadata into
// display rows, sorted by the fixed Montag..Sonntag day order (not
// lexicographic abbreviation), then by time, then by room — mirroring the
// original's day.NAMES-ordered sort_time_table.
func BuildRows(result *loader.Result, outcome solver.Outcome) []Row {
	rows := make([]Row, len(outcome.Best))
	for blockIdx, gene := range outcome.Best {
		blockMeta := result.BlockMetas[blockIdx]
		slotMeta := result.SlotMetas[gene]

		var semesters []int
		for _, semSet := range result.Problem.Blocks[blockIdx].Participants {
			for semID := range semSet {
				semesters = append(semesters, result.SemesterValues[semID])
			}
		}
		sort.Ints(semesters)

		rows[blockIdx] = Row{
			DayName:    slotMeta.DayName,
			DayOrdinal: slotMeta.DayOrdinal,
			TimeStart:  slotMeta.TimeStart,
			TimeEnd:    slotMeta.TimeEnd,
			RoomName:   slotMeta.RoomName,
			EventName:  blockMeta.EventName,
			Semesters:  semesters,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DayOrdinal != rows[j].DayOrdinal {
			return rows[i].DayOrdinal < rows[j].DayOrdinal
		}
		if rows[i].TimeStart != rows[j].TimeStart {
			return rows[i].TimeStart < rows[j].TimeStart
		}
		return rows[i].RoomName < rows[j].RoomName
	})

	disambiguate(rows)
	return rows
}

// disambiguate appends " (2)", " (3)", ... to EventName when two rows in the
// same day/time cell share an event name, mirroring the original's handling
// of split/grouped sections landing on the same slot.
func disambiguate(rows []Row) {
	seen := make(map[string]int)
	for i := range rows {
		cellKey := fmt.Sprintf("%s|%s|%s", rows[i].DayName, rows[i].TimeStart, rows[i].EventName)
		seen[cellKey]++
		if n := seen[cellKey]; n > 1 {
			rows[i].EventName = fmt.Sprintf("%s (%d)", rows[i].EventName, n)
		}
	}
}

// Dataset renders rows into the generic export.Dataset shape shared by the
// CSV/PDF/plain-text renderers.
func Dataset(rows []Row) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{headerDay, headerTime, headerRoom, headerEvent, headerSemesters},
		Rows:    make([]map[string]string, len(rows)),
	}
	for i, row := range rows {
		dataset.Rows[i] = map[string]string{
			headerDay:       row.DayName,
			headerTime:      fmt.Sprintf("%s-%s", row.TimeStart, row.TimeEnd),
			headerRoom:      row.RoomName,
			headerEvent:     row.EventName,
			headerSemesters: formatSemesters(row.Semesters),
		}
	}
	return dataset
}

func formatSemesters(semesters []int) string {
	out := ""
	for i, s := range semesters {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", s)
	}
	return out
}

// PerSemesterDatasets splits rows into one Dataset per semester value,
// reproducing the original's separate_time_tables supplement.
func PerSemesterDatasets(rows []Row) map[int]export.Dataset {
	bySemester := make(map[int][]Row)
	for _, row := range rows {
		if len(row.Semesters) == 0 {
			bySemester[0] = append(bySemester[0], row)
			continue
		}
		for _, sem := range row.Semesters {
			bySemester[sem] = append(bySemester[sem], row)
		}
	}
	result := make(map[int]export.Dataset, len(bySemester))
	for sem, semRows := range bySemester {
		result[sem] = Dataset(semRows)
	}
	return result
}
