package snapshot

import "context"

// Reader is the read capability internal/loader needs over the external
// store. PostgresReader is the only production implementation; tests stub
// it directly since every method is independent and side-effect free.
type Reader interface {
	Days(ctx context.Context) ([]Day, error)
	TimeSlots(ctx context.Context) ([]TimeSlot, error)
	Dates(ctx context.Context) ([]Date, error)
	Rooms(ctx context.Context) ([]Room, error)
	ParticipantSizes(ctx context.Context) ([]ParticipantSize, error)
	RoomTypes(ctx context.Context) ([]RoomType, error)
	Employees(ctx context.Context) ([]Employee, error)
	Courses(ctx context.Context) ([]Course, error)
	Semesters(ctx context.Context) ([]Semester, error)
	Terms(ctx context.Context) ([]Term, error)
	Priorities(ctx context.Context) ([]Priority, error)
	Events(ctx context.Context) ([]Event, error)
	EmployeeHoldsEvent(ctx context.Context) ([]EmployeeHoldsEvent, error)
	CourseContainsEvent(ctx context.Context) ([]CourseContainsEvent, error)
	EmployeeDislikesDate(ctx context.Context) ([]EmployeeDislikesDate, error)
	EventDisallowsDay(ctx context.Context) ([]EventDisallowsDay, error)
}
