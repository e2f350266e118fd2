package solver

import (
	"context"
	"testing"

	"github.com/fhw-wedel/timetable-solver/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 50
	cfg.NumGenerations = 50
	cfg.NumParentsMating = 10
	cfg.TournamentK = 10
	cfg.Elitism = 1
	return cfg
}

// S1 — trivial fit.
func TestScenarioTrivialFit(t *testing.T) {
	problem, err := NewProblem(
		[]Block{{EventID: 1, RoomTypeID: 1, ParticipantSizeOrdinal: 1}},
		[]Slot{
			{DateID: 0, RoomID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
			{DateID: 0, RoomID: 1, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
			{DateID: 1, RoomID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
			{DateID: 1, RoomID: 1, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
		},
		nil,
	)
	require.NoError(t, err)

	outcome, err := Run(context.Background(), problem, scenarioConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Penalty)
	assert.LessOrEqual(t, outcome.Generations, 2)
}

// S2 — room type.
func TestScenarioRoomTypePreference(t *testing.T) {
	problem, err := NewProblem(
		[]Block{{EventID: 1, RoomTypeID: 1, ParticipantSizeOrdinal: 1}},
		[]Slot{
			{DateID: 0, RoomID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}, // room A
			{DateID: 1, RoomID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}, // room A
			{DateID: 0, RoomID: 1, RoomTypeID: 2, RoomParticipantSizeOrdinal: 1}, // room B
			{DateID: 1, RoomID: 1, RoomTypeID: 2, RoomParticipantSizeOrdinal: 1}, // room B
		},
		nil,
	)
	require.NoError(t, err)

	outcome, err := Run(context.Background(), problem, scenarioConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, outcome.Penalty)

	chosen := problem.Slots[outcome.Best[0]]
	assert.Equal(t, 0, chosen.RoomID, "must land in room A, the only type-1 room")
}

// S3 — capacity.
func TestScenarioCapacity(t *testing.T) {
	problem, err := NewProblem(
		[]Block{{EventID: 1, RoomTypeID: 1, ParticipantSizeOrdinal: 5}},
		[]Slot{
			{DateID: 0, RoomID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}, // too small
			{DateID: 0, RoomID: 1, RoomTypeID: 1, RoomParticipantSizeOrdinal: 5}, // high capacity
		},
		nil,
	)
	require.NoError(t, err)

	outcome, err := Run(context.Background(), problem, scenarioConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, outcome.Penalty)

	chosen := problem.Slots[outcome.Best[0]]
	assert.Equal(t, 1, chosen.RoomID)
}

// S4 — disallowed day.
func TestScenarioDisallowedDay(t *testing.T) {
	problem, err := NewProblem(
		[]Block{{EventID: 1, RoomTypeID: 1, ParticipantSizeOrdinal: 1, DisallowedDayIDs: map[int]struct{}{0: {}}}},
		[]Slot{
			{DateID: 0, DayID: 0, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}, // Monday, disallowed
			{DateID: 1, DayID: 1, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}, // Tuesday
		},
		nil,
	)
	require.NoError(t, err)

	outcome, err := Run(context.Background(), problem, scenarioConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, outcome.Penalty)

	chosen := problem.Slots[outcome.Best[0]]
	assert.Equal(t, 1, chosen.DayID, "must land on Tuesday, the only allowed day")
}

// S5 — employee dislike forces a trade-off.
func TestScenarioEmployeeDislikeForcesTradeOff(t *testing.T) {
	problem, err := NewProblem(
		[]Block{
			{EventID: 1, EmployeeIDs: []int{1}, RoomTypeID: 1, ParticipantSizeOrdinal: 1},
			{EventID: 1, EmployeeIDs: []int{1}, RoomTypeID: 1, ParticipantSizeOrdinal: 1},
		},
		[]Slot{
			{DateID: 1, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
			{DateID: 2, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1},
		},
		map[DislikeKey]int{{EmployeeID: 1, DateID: 1}: 50},
	)
	require.NoError(t, err)

	cfg := scenarioConfig()
	cfg.StopOnZero = false // the optimum here is 50, not 0 — never stop early
	outcome, err := Run(context.Background(), problem, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.Penalty)
}

// S6 — infeasible.
func TestScenarioInfeasible(t *testing.T) {
	_, err := NewProblem(
		[]Block{{EventID: 1}, {EventID: 2}},
		[]Slot{{DateID: 0}},
		nil,
	)
	require.Error(t, err)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrInfeasible.Code, appErr.Code)
}
