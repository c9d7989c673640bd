package generator

import (
	"io"
	"math/rand/v2"
)

// Generator writes filler text one line at a time.
type Generator interface {
	// Init seeds the generator with its own random source. It fails when
	// the generator's vocabulary is unusable.
	Init(r *rand.Rand) error

	// WriteLine writes a single line, newline included.
	WriteLine(w io.Writer) error

	// Description returns a human-readable description of the line format
	Description() string

	// DefaultCount returns the suggested default number of lines to generate
	DefaultCount() int64
}
