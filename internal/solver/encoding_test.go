package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSlotProblem() *Problem {
	problem, _ := NewProblem(
		[]Block{{EventID: 1}},
		[]Slot{{DateID: 0}, {DateID: 1}},
		nil,
	)
	return problem
}

func TestChromosomeIsStructurallyValid(t *testing.T) {
	problem := twoSlotProblem()

	assert.True(t, Chromosome{0}.IsStructurallyValid(problem))
	assert.True(t, Chromosome{1}.IsStructurallyValid(problem))
	assert.False(t, Chromosome{2}.IsStructurallyValid(problem), "gene out of range")
	assert.False(t, Chromosome{0, 0}.IsStructurallyValid(problem), "wrong length")

	multiBlock, _ := NewProblem(
		[]Block{{EventID: 1}, {EventID: 2}},
		[]Slot{{DateID: 0}, {DateID: 1}},
		nil,
	)
	assert.False(t, Chromosome{0, 0}.IsStructurallyValid(multiBlock), "duplicate genes")
	assert.True(t, Chromosome{0, 1}.IsStructurallyValid(multiBlock))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Chromosome{2, 0, 1}
	assignments := Decode(original)
	rebuilt, err := Encode(assignments, len(original))
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

func TestEncodeDecodeRoundTripOutOfOrder(t *testing.T) {
	original := Chromosome{5, 3, 7}
	assignments := Decode(original)
	// Shuffle assignment order; Encode must still reproduce the original.
	assignments[0], assignments[2] = assignments[2], assignments[0]
	rebuilt, err := Encode(assignments, len(original))
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

func TestEncodeRejectsMissingBlock(t *testing.T) {
	_, err := Encode([]Assignment{{BlockIndex: 0, SlotIndex: 1}}, 2)
	assert.Error(t, err)
}

func TestEncodeRejectsOutOfRangeBlock(t *testing.T) {
	_, err := Encode([]Assignment{{BlockIndex: 5, SlotIndex: 1}}, 2)
	assert.Error(t, err)
}
