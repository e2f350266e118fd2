package snapshot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresReader implements Reader with one SELECT ... ORDER BY id per
// table, matching the teacher repository's per-entity fetch style.
type PostgresReader struct {
	db *sqlx.DB
}

// NewPostgresReader builds a reader over an already-connected *sqlx.DB.
func NewPostgresReader(db *sqlx.DB) *PostgresReader {
	return &PostgresReader{db: db}
}

func (r *PostgresReader) Days(ctx context.Context) ([]Day, error) {
	const query = `SELECT id, abbreviation, name FROM day ORDER BY id`
	var days []Day
	if err := r.db.SelectContext(ctx, &days, query); err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	for i := range days {
		days[i].Ordinal = DayOrdinal(days[i].Abbreviation)
	}
	return days, nil
}

func (r *PostgresReader) TimeSlots(ctx context.Context) ([]TimeSlot, error) {
	const query = `SELECT id, start_time, end_time FROM time_slot ORDER BY id`
	var slots []TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

func (r *PostgresReader) Dates(ctx context.Context) ([]Date, error) {
	const query = `SELECT id, day_id, time_slot_id FROM date ORDER BY id`
	var dates []Date
	if err := r.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	return dates, nil
}

func (r *PostgresReader) Rooms(ctx context.Context) ([]Room, error) {
	const query = `SELECT id, abbreviation, name, participant_size_id, room_type_id FROM room ORDER BY id`
	var rooms []Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r *PostgresReader) ParticipantSizes(ctx context.Context) ([]ParticipantSize, error) {
	const query = `SELECT id, name, ordinal FROM participant_size ORDER BY id`
	var sizes []ParticipantSize
	if err := r.db.SelectContext(ctx, &sizes, query); err != nil {
		return nil, fmt.Errorf("list participant sizes: %w", err)
	}
	return sizes, nil
}

func (r *PostgresReader) RoomTypes(ctx context.Context) ([]RoomType, error) {
	const query = `SELECT id, name FROM room_type ORDER BY id`
	var types []RoomType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return types, nil
}

func (r *PostgresReader) Employees(ctx context.Context) ([]Employee, error) {
	const query = `SELECT id, abbreviation, title, first_name, last_name, employee_type_id FROM employee ORDER BY id`
	var employees []Employee
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *PostgresReader) Courses(ctx context.Context) ([]Course, error) {
	const query = `SELECT id, abbreviation, name FROM course ORDER BY id`
	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *PostgresReader) Semesters(ctx context.Context) ([]Semester, error) {
	const query = `SELECT id, value FROM semester ORDER BY id`
	var semesters []Semester
	if err := r.db.SelectContext(ctx, &semesters, query); err != nil {
		return nil, fmt.Errorf("list semesters: %w", err)
	}
	return semesters, nil
}

func (r *PostgresReader) Terms(ctx context.Context) ([]Term, error) {
	const query = `SELECT id, name FROM term ORDER BY id`
	var terms []Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

func (r *PostgresReader) Priorities(ctx context.Context) ([]Priority, error) {
	const query = `SELECT id, value FROM priority ORDER BY id`
	var priorities []Priority
	if err := r.db.SelectContext(ctx, &priorities, query); err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return priorities, nil
}

func (r *PostgresReader) Events(ctx context.Context) ([]Event, error) {
	const query = `SELECT id, name, weekly_blocks, term_id, participant_size_id, room_type_id FROM event ORDER BY id`
	var events []Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *PostgresReader) EmployeeHoldsEvent(ctx context.Context) ([]EmployeeHoldsEvent, error) {
	const query = `SELECT employee_id, event_id FROM employee_holds_event ORDER BY employee_id, event_id`
	var rows []EmployeeHoldsEvent
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list employee_holds_event: %w", err)
	}
	return rows, nil
}

func (r *PostgresReader) CourseContainsEvent(ctx context.Context) ([]CourseContainsEvent, error) {
	const query = `SELECT course_id, semester_id, event_id FROM course_contains_event ORDER BY course_id, semester_id, event_id`
	var rows []CourseContainsEvent
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list course_contains_event: %w", err)
	}
	return rows, nil
}

func (r *PostgresReader) EmployeeDislikesDate(ctx context.Context) ([]EmployeeDislikesDate, error) {
	const query = `SELECT employee_id, date_id, priority_id FROM employee_dislikes_date ORDER BY employee_id, date_id`
	var rows []EmployeeDislikesDate
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list employee_dislikes_date: %w", err)
	}
	return rows, nil
}

func (r *PostgresReader) EventDisallowsDay(ctx context.Context) ([]EventDisallowsDay, error) {
	const query = `SELECT event_id, day_id FROM event_disallows_day ORDER BY event_id, day_id`
	var rows []EventDisallowsDay
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list event_disallows_day: %w", err)
	}
	return rows, nil
}
