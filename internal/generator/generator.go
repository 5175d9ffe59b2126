// Package generator builds typing word sequences.
package generator

import (
	"math/rand"
	"time"
)

// Generator draws words from a pool.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate selects count words uniformly from pool. A non-nil seed makes the
// result reproducible for the same pool; a nil seed uses the generator's own
// source.
func (g *Generator) Generate(count int, seed *int64, pool []string) []string {
	if count <= 0 || len(pool) == 0 {
		return []string{}
	}
	rnd := g.rnd
	if seed != nil {
		rnd = rand.New(rand.NewSource(*seed))
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, pool[rnd.Intn(len(pool))])
	}
	return result
}
