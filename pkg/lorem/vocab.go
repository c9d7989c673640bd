package lorem

import "fmt"

// DefaultPool is the original lorem ipsum word pool.
var DefaultPool = []string{
	"ad", "adipiscing", "aliqua", "aliquip", "amet", "anim", "aute", "cillum", "commodo",
	"consectetur", "consequat", "culpa", "cupidatat", "deserunt", "do", "dolor", "dolore",
	"duis", "ea", "eiusmod", "elit", "enim", "esse", "est", "et", "eu", "ex", "excepteur",
	"exercitation", "fugiat", "id", "in", "incididunt", "ipsum", "irure", "labore", "laboris",
	"laborum", "lorem", "magna", "minim", "mollit", "nisi", "non", "nostrud", "nulla",
	"occaecat", "officia", "pariatur", "proident", "qui", "quis", "reprehenderit", "sed",
	"sint", "sit", "sunt", "tempor", "ullamco", "ut", "velit", "veniam", "voluptate",
}

// ValidatePool reports whether pool can back a cycler.
func ValidatePool(pool []string) error {
	if len(pool) == 0 {
		return fmt.Errorf("%w: pool is empty", ErrInvalidPool)
	}
	for i, w := range pool {
		if w == "" {
			return fmt.Errorf("%w: empty token at index %d", ErrInvalidPool, i)
		}
	}
	return nil
}

func clonePool(pool []string) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}
