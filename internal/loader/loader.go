// Package loader turns a snapshot.Reader's store rows into the solver's
// immutable, dense-indexed Problem, performing the translation the original
// system did in two stages (DAO rows -> domain objects -> solver arrays):
// fetch everything once, validate referential integrity, filter by term,
// then materialise BLOCKS/SLOTS/the dislike table.
package loader

import (
	"context"
	"encoding/gob"
	"fmt"
	"sort"

	"github.com/fhw-wedel/timetable-solver/internal/snapshot"
	"github.com/fhw-wedel/timetable-solver/internal/solver"
	"github.com/fhw-wedel/timetable-solver/pkg/cache"
	"github.com/fhw-wedel/timetable-solver/pkg/errors"
)

// Term is the fixed enumeration the CLI's --summer/--winter flags select.
type Term string

const (
	TermSommer Term = "Sommer"
	TermWinter Term = "Winter"
)

// BlockMeta carries the display-only fields a Problem.Block doesn't need for
// evaluation but internal/format needs to render a human-readable row.
type BlockMeta struct {
	EventID   int
	EventName string
}

// SlotMeta mirrors BlockMeta for Problem.Slots.
type SlotMeta struct {
	DayID       int
	DayName     string
	DayOrdinal  int
	TimeStart   string
	TimeEnd     string
	RoomID      int
	RoomName    string
	RoomAbbrev  string
}

// Result bundles the solver-ready Problem with the lookup metadata
// internal/format needs to turn a chromosome back into readable output.
type Result struct {
	Problem    *solver.Problem
	BlockMetas []BlockMeta
	SlotMetas  []SlotMeta
	// CourseNames/SemesterValues resolve the course_id/semester_id pairs in
	// each block's Participants set.
	CourseNames    map[int]string
	SemesterValues map[int]int
}

const cacheKeyPrefix = "timetable:problem:"

// Load fetches every table from reader, validates referential integrity,
// filters events to term, and materialises the Problem. If cacheClient is
// non-nil, a previously cached Result for the same term is reused within its
// TTL, eliding the store round trip on repeated CLI invocations; the store
// is still read exactly once per process when the cache misses.
func Load(ctx context.Context, term Term, reader snapshot.Reader, cacheClient cache.BytesCache, ttlSeconds int) (*Result, error) {
	cacheKey := cacheKeyPrefix + string(term)

	if cacheClient != nil {
		if raw, ok, err := cacheClient.Get(ctx, cacheKey); err == nil && ok {
			if result, decodeErr := decodeResult(raw); decodeErr == nil {
				return result, nil
			}
		}
	}

	result, err := build(ctx, term, reader)
	if err != nil {
		return nil, err
	}

	if cacheClient != nil {
		if raw, err := encodeResult(result); err == nil {
			_ = cacheClient.Set(ctx, cacheKey, raw, ttlDuration(ttlSeconds))
		}
	}

	return result, nil
}

func build(ctx context.Context, term Term, reader snapshot.Reader) (*Result, error) {
	days, err := reader.Days(ctx)
	if err != nil {
		return nil, storageErr("days", err)
	}
	timeSlots, err := reader.TimeSlots(ctx)
	if err != nil {
		return nil, storageErr("time slots", err)
	}
	dates, err := reader.Dates(ctx)
	if err != nil {
		return nil, storageErr("dates", err)
	}
	rooms, err := reader.Rooms(ctx)
	if err != nil {
		return nil, storageErr("rooms", err)
	}
	participantSizes, err := reader.ParticipantSizes(ctx)
	if err != nil {
		return nil, storageErr("participant sizes", err)
	}
	roomTypes, err := reader.RoomTypes(ctx)
	if err != nil {
		return nil, storageErr("room types", err)
	}
	employees, err := reader.Employees(ctx)
	if err != nil {
		return nil, storageErr("employees", err)
	}
	courses, err := reader.Courses(ctx)
	if err != nil {
		return nil, storageErr("courses", err)
	}
	semesters, err := reader.Semesters(ctx)
	if err != nil {
		return nil, storageErr("semesters", err)
	}
	terms, err := reader.Terms(ctx)
	if err != nil {
		return nil, storageErr("terms", err)
	}
	priorities, err := reader.Priorities(ctx)
	if err != nil {
		return nil, storageErr("priorities", err)
	}
	events, err := reader.Events(ctx)
	if err != nil {
		return nil, storageErr("events", err)
	}
	holdsEvent, err := reader.EmployeeHoldsEvent(ctx)
	if err != nil {
		return nil, storageErr("employee_holds_event", err)
	}
	containsEvent, err := reader.CourseContainsEvent(ctx)
	if err != nil {
		return nil, storageErr("course_contains_event", err)
	}
	dislikesDate, err := reader.EmployeeDislikesDate(ctx)
	if err != nil {
		return nil, storageErr("employee_dislikes_date", err)
	}
	disallowsDay, err := reader.EventDisallowsDay(ctx)
	if err != nil {
		return nil, storageErr("event_disallows_day", err)
	}

	dayByID := indexDays(days)
	timeSlotByID := indexTimeSlots(timeSlots)
	participantSizeByID := indexParticipantSizes(participantSizes)
	roomTypeByID := indexRoomTypes(roomTypes)
	employeeByID := indexEmployees(employees)
	courseByID := indexCourses(courses)
	semesterByID := indexSemesters(semesters)
	priorityByID := indexPriorities(priorities)
	eventByID := indexEvents(events)

	termIDByName := make(map[string]int, len(terms))
	for _, t := range terms {
		termIDByName[t.Name] = t.ID
	}
	requestedTermID, ok := termIDByName[string(term)]
	if !ok {
		return nil, errors.Clone(errors.ErrReferential, fmt.Sprintf("requested term %q not found in store", term))
	}

	// Referential integrity: every FK must resolve.
	for _, d := range dates {
		if _, ok := dayByID[d.DayID]; !ok {
			return nil, refErr("date.day_id", d.DayID)
		}
		if _, ok := timeSlotByID[d.TimeSlotID]; !ok {
			return nil, refErr("date.time_slot_id", d.TimeSlotID)
		}
	}
	for _, r := range rooms {
		if _, ok := participantSizeByID[r.ParticipantSizeID]; !ok {
			return nil, refErr("room.participant_size_id", r.ParticipantSizeID)
		}
		if _, ok := roomTypeByID[r.RoomTypeID]; !ok {
			return nil, refErr("room.room_type_id", r.RoomTypeID)
		}
	}
	for _, e := range events {
		if _, ok := termIDByNameResolved(terms, e.TermID); !ok {
			return nil, refErr("event.term_id", e.TermID)
		}
		if _, ok := participantSizeByID[e.ParticipantSizeID]; !ok {
			return nil, refErr("event.participant_size_id", e.ParticipantSizeID)
		}
		if _, ok := roomTypeByID[e.RoomTypeID]; !ok {
			return nil, refErr("event.room_type_id", e.RoomTypeID)
		}
	}
	for _, h := range holdsEvent {
		if _, ok := employeeByID[h.EmployeeID]; !ok {
			return nil, refErr("employee_holds_event.employee_id", h.EmployeeID)
		}
		if _, ok := eventByID[h.EventID]; !ok {
			return nil, refErr("employee_holds_event.event_id", h.EventID)
		}
	}
	for _, c := range containsEvent {
		if _, ok := courseByID[c.CourseID]; !ok {
			return nil, refErr("course_contains_event.course_id", c.CourseID)
		}
		if _, ok := semesterByID[c.SemesterID]; !ok {
			return nil, refErr("course_contains_event.semester_id", c.SemesterID)
		}
		if _, ok := eventByID[c.EventID]; !ok {
			return nil, refErr("course_contains_event.event_id", c.EventID)
		}
	}
	dateByID := indexDates(dates)
	for _, dd := range dislikesDate {
		if _, ok := employeeByID[dd.EmployeeID]; !ok {
			return nil, refErr("employee_dislikes_date.employee_id", dd.EmployeeID)
		}
		if _, ok := dateByID[dd.DateID]; !ok {
			return nil, refErr("employee_dislikes_date.date_id", dd.DateID)
		}
		if _, ok := priorityByID[dd.PriorityID]; !ok {
			return nil, refErr("employee_dislikes_date.priority_id", dd.PriorityID)
		}
	}
	for _, ed := range disallowsDay {
		if _, ok := eventByID[ed.EventID]; !ok {
			return nil, refErr("event_disallows_day.event_id", ed.EventID)
		}
		if _, ok := dayByID[ed.DayID]; !ok {
			return nil, refErr("event_disallows_day.day_id", ed.DayID)
		}
	}

	// Per-event relation aggregation.
	employeeIDsByEvent := make(map[int][]int)
	for _, h := range holdsEvent {
		employeeIDsByEvent[h.EventID] = append(employeeIDsByEvent[h.EventID], h.EmployeeID)
	}
	participantsByEvent := make(map[int]map[int]map[int]struct{})
	for _, c := range containsEvent {
		if participantsByEvent[c.EventID] == nil {
			participantsByEvent[c.EventID] = make(map[int]map[int]struct{})
		}
		if participantsByEvent[c.EventID][c.CourseID] == nil {
			participantsByEvent[c.EventID][c.CourseID] = make(map[int]struct{})
		}
		participantsByEvent[c.EventID][c.CourseID][c.SemesterID] = struct{}{}
	}
	disallowedDaysByEvent := make(map[int]map[int]struct{})
	for _, ed := range disallowsDay {
		if disallowedDaysByEvent[ed.EventID] == nil {
			disallowedDaysByEvent[ed.EventID] = make(map[int]struct{})
		}
		disallowedDaysByEvent[ed.EventID][ed.DayID] = struct{}{}
	}

	// BLOCKS: term-filtered events, stable by event_id then block index.
	termEvents := make([]snapshot.Event, 0, len(events))
	for _, e := range events {
		if e.TermID == requestedTermID {
			termEvents = append(termEvents, e)
		}
	}
	sort.Slice(termEvents, func(i, j int) bool { return termEvents[i].ID < termEvents[j].ID })

	var blocks []solver.Block
	var blockMetas []BlockMeta
	for _, e := range termEvents {
		for b := 0; b < e.WeeklyBlocks; b++ {
			blocks = append(blocks, solver.Block{
				EventID:                e.ID,
				EmployeeIDs:            employeeIDsByEvent[e.ID],
				Participants:           participantsByEvent[e.ID],
				DisallowedDayIDs:       disallowedDaysByEvent[e.ID],
				RoomTypeID:             e.RoomTypeID,
				ParticipantSizeOrdinal: participantSizeByID[e.ParticipantSizeID].Ordinal,
			})
			blockMetas = append(blockMetas, BlockMeta{EventID: e.ID, EventName: e.Name})
		}
	}

	// SLOTS: cartesian product of dates x rooms, stable by date_id then room_id.
	sortedDates := append([]snapshot.Date(nil), dates...)
	sort.Slice(sortedDates, func(i, j int) bool { return sortedDates[i].ID < sortedDates[j].ID })
	sortedRooms := append([]snapshot.Room(nil), rooms...)
	sort.Slice(sortedRooms, func(i, j int) bool { return sortedRooms[i].ID < sortedRooms[j].ID })

	var slots []solver.Slot
	var slotMetas []SlotMeta
	for _, d := range sortedDates {
		day := dayByID[d.DayID]
		ts := timeSlotByID[d.TimeSlotID]
		for _, r := range sortedRooms {
			size := participantSizeByID[r.ParticipantSizeID]
			slots = append(slots, solver.Slot{
				DateID:                     d.ID,
				DayID:                      d.DayID,
				TimeSlotID:                 d.TimeSlotID,
				RoomID:                     r.ID,
				RoomParticipantSizeOrdinal: size.Ordinal,
				RoomTypeID:                 r.RoomTypeID,
			})
			slotMetas = append(slotMetas, SlotMeta{
				DayID:      day.ID,
				DayName:    day.Name,
				DayOrdinal: day.Ordinal,
				TimeStart:  ts.StartTime,
				TimeEnd:    ts.EndTime,
				RoomID:     r.ID,
				RoomName:   r.Name,
				RoomAbbrev: r.Abbreviation,
			})
		}
	}

	dislikes := make(map[solver.DislikeKey]int, len(dislikesDate))
	for _, dd := range dislikesDate {
		dislikes[solver.DislikeKey{EmployeeID: dd.EmployeeID, DateID: dd.DateID}] = priorityByID[dd.PriorityID].Value
	}

	problem, err := solver.NewProblem(blocks, slots, dislikes)
	if err != nil {
		return nil, err
	}

	courseNames := make(map[int]string, len(courses))
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}
	semesterValues := make(map[int]int, len(semesters))
	for _, s := range semesters {
		semesterValues[s.ID] = s.Value
	}

	return &Result{
		Problem:        problem,
		BlockMetas:     blockMetas,
		SlotMetas:      slotMetas,
		CourseNames:    courseNames,
		SemesterValues: semesterValues,
	}, nil
}

func termIDByNameResolved(terms []snapshot.Term, id int) (snapshot.Term, bool) {
	for _, t := range terms {
		if t.ID == id {
			return t, true
		}
	}
	return snapshot.Term{}, false
}

func indexDays(rows []snapshot.Day) map[int]snapshot.Day {
	m := make(map[int]snapshot.Day, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexTimeSlots(rows []snapshot.TimeSlot) map[int]snapshot.TimeSlot {
	m := make(map[int]snapshot.TimeSlot, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexDates(rows []snapshot.Date) map[int]snapshot.Date {
	m := make(map[int]snapshot.Date, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexParticipantSizes(rows []snapshot.ParticipantSize) map[int]snapshot.ParticipantSize {
	m := make(map[int]snapshot.ParticipantSize, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexRoomTypes(rows []snapshot.RoomType) map[int]snapshot.RoomType {
	m := make(map[int]snapshot.RoomType, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexEmployees(rows []snapshot.Employee) map[int]snapshot.Employee {
	m := make(map[int]snapshot.Employee, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexCourses(rows []snapshot.Course) map[int]snapshot.Course {
	m := make(map[int]snapshot.Course, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexSemesters(rows []snapshot.Semester) map[int]snapshot.Semester {
	m := make(map[int]snapshot.Semester, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexPriorities(rows []snapshot.Priority) map[int]snapshot.Priority {
	m := make(map[int]snapshot.Priority, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func indexEvents(rows []snapshot.Event) map[int]snapshot.Event {
	m := make(map[int]snapshot.Event, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func refErr(field string, value int) error {
	return errors.Clone(errors.ErrReferential, fmt.Sprintf("dangling reference %s=%d", field, value))
}

func storageErr(table string, err error) error {
	return errors.Clone(errors.ErrStorage, fmt.Sprintf("reading %s: %v", table, err))
}

func init() {
	gob.Register(map[int]struct{}{})
	gob.Register(map[int]map[int]struct{}{})
}
