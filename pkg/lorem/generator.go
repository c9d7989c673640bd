// Package lorem generates lorem ipsum placeholder text.
//
// Words are drawn from a Cycler, which walks a shuffled copy of the word
// pool and reshuffles when it runs out, so every word appears once per
// cycle before any repeats. Sentences and paragraphs are assembled from
// those words with random lengths and comma placement.
package lorem

import (
	"strings"

	"go.uber.org/zap"
)

// Generator produces words, sentences and paragraphs from its own cycler.
// It is not safe for concurrent use.
type Generator struct {
	cycler *Cycler
	src    Source
	logger *zap.Logger
}

// New creates a Generator. Only WithPool, WithDupe, WithSource,
// WithLogger and WithDefaults apply.
func New(opts ...Option) (*Generator, error) {
	r := resolve(opts)
	return newGenerator(r, r.dupe)
}

func newGenerator(r resolved, dupe int) (*Generator, error) {
	c, err := NewCycler(r.pool, dupe, r.src, r.logger)
	if err != nil {
		return nil, err
	}
	return &Generator{cycler: c, src: r.src, logger: r.logger}, nil
}

// Cycler exposes the underlying token sequence.
func (g *Generator) Cycler() *Cycler {
	return g.cycler
}

// Word draws one token and applies t to it. A nil t returns the token as is.
func (g *Generator) Word(t Transform) (string, error) {
	w := g.cycler.Next()
	if t == nil {
		return w, nil
	}
	return t.Apply(w)
}

// Sentence builds one sentence: a capitalized first word, more words up
// to a count drawn from words, then comma clauses while a coin keeps
// landing true (at most a count drawn from comma), and a final period.
func (g *Generator) Sentence(comma, words Range) (string, error) {
	if err := validateSentence(comma, words); err != nil {
		return "", err
	}
	return g.sentence(comma, words), nil
}

// Paragraph builds a count drawn from sentences of sentences joined by
// single spaces.
func (g *Generator) Paragraph(comma, words, sentences Range) (string, error) {
	if err := validateParagraph(comma, words, sentences); err != nil {
		return "", err
	}
	return g.paragraph(comma, words, sentences), nil
}

func validateSentence(comma, words Range) error {
	if err := comma.Validate("comma", 0); err != nil {
		return err
	}
	return words.Validate("word", 1)
}

func validateParagraph(comma, words, sentences Range) error {
	if err := validateSentence(comma, words); err != nil {
		return err
	}
	return sentences.Validate("sentence", 1)
}

func (g *Generator) sentence(comma, words Range) string {
	var b strings.Builder
	b.WriteString(capitalize(g.cycler.Next()))

	for range words.Pick(g.src) - 1 {
		b.WriteByte(' ')
		b.WriteString(g.cycler.Next())
	}

	for range comma.Pick(g.src) {
		if !g.src.Coin() {
			break
		}
		b.WriteByte(',')
		for range words.Pick(g.src) {
			b.WriteByte(' ')
			b.WriteString(g.cycler.Next())
		}
	}

	b.WriteByte('.')
	return b.String()
}

func (g *Generator) paragraph(comma, words, sentences Range) string {
	n := sentences.Pick(g.src)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.sentence(comma, words)
	}
	return strings.Join(parts, " ")
}
