package lorem

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// Cycler yields tokens from a shuffled working multiset forever. Every
// token appears once per permutation before any repeats; when the
// permutation is used up the same multiset is reshuffled in place.
//
// A Cycler owns its cursor and is not safe for concurrent use.
type Cycler struct {
	multiset []string
	pos      int
	cycles   int
	src      Source
	logger   *zap.Logger
}

// NewCycler builds a cycler over dupe concatenated copies of pool.
func NewCycler(pool []string, dupe int, src Source, logger *zap.Logger) (*Cycler, error) {
	if err := ValidatePool(pool); err != nil {
		return nil, err
	}
	if dupe < 1 {
		return nil, fmt.Errorf("%w: duplication factor %d must be positive", ErrInvalidPool, dupe)
	}
	if src == nil {
		src = NewSource(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	multiset := make([]string, 0, len(pool)*dupe)
	for range dupe {
		multiset = append(multiset, pool...)
	}

	c := &Cycler{
		multiset: multiset,
		src:      src,
		logger:   logger,
	}
	c.shuffle()

	logger.Debug("cycler created",
		zap.Int("pool", len(pool)),
		zap.Int("dupe", dupe),
		zap.Int("size", len(multiset)))

	return c, nil
}

func (c *Cycler) shuffle() {
	c.src.Shuffle(len(c.multiset), func(i, j int) {
		c.multiset[i], c.multiset[j] = c.multiset[j], c.multiset[i]
	})
	c.pos = 0
}

// Next returns the next token.
func (c *Cycler) Next() string {
	if c.pos == len(c.multiset) {
		c.shuffle()
		c.cycles++
		c.logger.Debug("working multiset reshuffled", zap.Int("cycle", c.cycles))
	}
	tok := c.multiset[c.pos]
	c.pos++
	return tok
}

// All returns an unbounded sequence of tokens. Callers stop by breaking.
func (c *Cycler) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(c.Next()) {
				return
			}
		}
	}
}

// Len returns the size of the working multiset.
func (c *Cycler) Len() int {
	return len(c.multiset)
}

// Cycles returns how many times the multiset has been reshuffled after
// the initial permutation was consumed.
func (c *Cycler) Cycles() int {
	return c.cycles
}
