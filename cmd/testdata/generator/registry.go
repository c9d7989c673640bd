package generator

import (
	"fmt"
	"slices"
	"strings"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

// Registry maps generator names to factories. A nil pool means the
// built-in lorem ipsum vocabulary.
var Registry = map[string]func(pool []string) Generator{
	"words":      func(pool []string) Generator { return &WordsGenerator{Pool: pool, PerLine: lorem.Range{Min: 8, Max: 16}} },
	"sentences":  func(pool []string) Generator { return &SentencesGenerator{Pool: pool} },
	"paragraphs": func(pool []string) Generator { return &ParagraphsGenerator{Pool: pool} },
}

// Get returns a generator by name. Singular names are accepted too.
func Get(name string, pool []string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		factory, exists = Registry[name+"s"]
	}
	if !exists {
		return nil, fmt.Errorf("unknown generator %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return factory(pool), nil
}

// List returns all available generator names, sorted.
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
