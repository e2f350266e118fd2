package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 20
	cfg.NumGenerations = 30
	cfg.NumParentsMating = 6
	cfg.TournamentK = 5
	cfg.Elitism = 2
	return cfg
}

func TestRunEmptyProblemReturnsZeroPenaltyImmediately(t *testing.T) {
	problem, err := NewProblem(nil, []Slot{{DateID: 0}}, nil)
	require.NoError(t, err)

	outcome, err := Run(context.Background(), problem, smallConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Penalty)
	assert.Equal(t, 0, outcome.Generations)
	assert.Equal(t, ReasonEmptyProblem, outcome.Reason)
}

func TestRunBlocksEqualSlotsOnlyPermutationsValid(t *testing.T) {
	problem := blockSlotProblem(6, 6)
	cfg := smallConfig()
	cfg.StopOnZero = false

	outcome, err := Run(context.Background(), problem, cfg, nil)
	require.NoError(t, err)
	assert.True(t, Chromosome(outcome.Best).IsStructurallyValid(problem))
}

func TestRunIsDeterministicForIdenticalSeed(t *testing.T) {
	problem := blockSlotProblem(8, 16)
	cfg := smallConfig()

	outcomeA, err := Run(context.Background(), problem, cfg, nil)
	require.NoError(t, err)
	outcomeB, err := Run(context.Background(), problem, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, outcomeA.Best, outcomeB.Best)
	assert.Equal(t, outcomeA.Penalty, outcomeB.Penalty)
	assert.Equal(t, outcomeA.Generations, outcomeB.Generations)
}

func TestRunElitismIsMonotonic(t *testing.T) {
	// Build a problem with no perfect assignment available cheaply (forces
	// several generations to run) so best-penalty-per-generation can be
	// observed via the progress sink.
	blocks := make([]Block, 10)
	for i := range blocks {
		blocks[i] = Block{EventID: i, EmployeeIDs: []int{i % 3}, RoomTypeID: 1, ParticipantSizeOrdinal: 1}
	}
	slots := make([]Slot, 12)
	for i := range slots {
		slots[i] = Slot{DateID: i % 4, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}
	}
	problem, err := NewProblem(blocks, slots, nil)
	require.NoError(t, err)

	cfg := smallConfig()
	cfg.StopOnZero = false
	cfg.NumGenerations = 15

	var history []int
	sink := progressRecorder{history: &history}

	_, err = Run(context.Background(), problem, cfg, sink)
	require.NoError(t, err)

	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i], history[i-1], "best penalty must never worsen across generations")
	}
}

type progressRecorder struct {
	history *[]int
}

func (p progressRecorder) Generation(generation int, bestPenalty int, medianPenalty float64) {
	*p.history = append(*p.history, bestPenalty)
}

func TestRunRespectsCancellation(t *testing.T) {
	blocks := make([]Block, 10)
	for i := range blocks {
		blocks[i] = Block{EventID: i, RoomTypeID: 1, ParticipantSizeOrdinal: 5}
	}
	slots := make([]Slot, 10)
	for i := range slots {
		slots[i] = Slot{DateID: i, RoomTypeID: 1, RoomParticipantSizeOrdinal: 1}
	}
	problem, err := NewProblem(blocks, slots, nil)
	require.NoError(t, err)

	cfg := smallConfig()
	cfg.StopOnZero = false
	cfg.NumGenerations = 20000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := Run(ctx, problem, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonCancelled, outcome.Reason)
	assert.Less(t, outcome.Generations, cfg.NumGenerations)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	problem := blockSlotProblem(2, 4)
	cfg := smallConfig()
	cfg.PopulationSize = 0

	_, err := Run(context.Background(), problem, cfg, nil)
	assert.Error(t, err)
}

func TestRunParallelEvaluationMatchesSequential(t *testing.T) {
	problem := blockSlotProblem(8, 16)
	cfgSeq := smallConfig()
	cfgSeq.Workers = 1
	cfgPar := smallConfig()
	cfgPar.Workers = 4

	outcomeSeq, err := Run(context.Background(), problem, cfgSeq, nil)
	require.NoError(t, err)
	outcomePar, err := Run(context.Background(), problem, cfgPar, nil)
	require.NoError(t, err)

	assert.Equal(t, outcomeSeq.Best, outcomePar.Best)
	assert.Equal(t, outcomeSeq.Penalty, outcomePar.Penalty)
}
