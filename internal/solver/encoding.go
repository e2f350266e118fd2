package solver

import "fmt"

// Chromosome is a candidate assignment: one gene per block, each gene an
// index into Problem.Slots. A Chromosome is structurally valid iff every
// gene is in range and all genes are pairwise distinct (no two blocks share
// a slot) — an invariant maintained by initialisation, crossover and
// mutation, and assumed (not re-checked) by Evaluate.
type Chromosome []int

// IsStructurallyValid reports whether c has exactly len(problem.Blocks)
// genes, each in [0, len(problem.Slots)), all pairwise distinct.
func (c Chromosome) IsStructurallyValid(problem *Problem) bool {
	if len(c) != len(problem.Blocks) {
		return false
	}
	seen := make(map[int]struct{}, len(c))
	for _, gene := range c {
		if gene < 0 || gene >= len(problem.Slots) {
			return false
		}
		if _, dup := seen[gene]; dup {
			return false
		}
		seen[gene] = struct{}{}
	}
	return true
}

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	clone := make(Chromosome, len(c))
	copy(clone, c)
	return clone
}

// Assignment is one resolved block-to-slot pairing.
type Assignment struct {
	BlockIndex int
	SlotIndex  int
}

// Decode expands a chromosome into its block/slot assignment pairs, in
// block-index order.
func Decode(chromosome Chromosome) []Assignment {
	assignments := make([]Assignment, len(chromosome))
	for i, gene := range chromosome {
		assignments[i] = Assignment{BlockIndex: i, SlotIndex: gene}
	}
	return assignments
}

// Encode rebuilds a chromosome from a set of assignments, one per block
// index in [0, numBlocks). It is the left inverse of Decode: Encode(Decode(c))
// reproduces c exactly (assignments need not arrive in BlockIndex order).
func Encode(assignments []Assignment, numBlocks int) (Chromosome, error) {
	chromosome := make(Chromosome, numBlocks)
	filled := make([]bool, numBlocks)
	for _, a := range assignments {
		if a.BlockIndex < 0 || a.BlockIndex >= numBlocks {
			return nil, fmt.Errorf("encode: block index %d out of range [0,%d)", a.BlockIndex, numBlocks)
		}
		chromosome[a.BlockIndex] = a.SlotIndex
		filled[a.BlockIndex] = true
	}
	for i, ok := range filled {
		if !ok {
			return nil, fmt.Errorf("encode: missing assignment for block %d", i)
		}
	}
	return chromosome, nil
}
