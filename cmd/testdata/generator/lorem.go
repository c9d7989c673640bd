package generator

import (
	"io"
	"math/rand/v2"
	"strings"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

var newline = []byte("\n")

// base holds the generator state shared by every kind.
type base struct {
	gen *lorem.Generator
	src lorem.Source
	buf strings.Builder
}

func (b *base) init(r *rand.Rand, pool []string) error {
	b.src = lorem.NewSource(r)
	opts := []lorem.Option{lorem.WithSource(b.src), lorem.WithDupe(64)}
	if pool != nil {
		opts = append(opts, lorem.WithPool(pool))
	}
	g, err := lorem.New(opts...)
	if err != nil {
		return err
	}
	b.gen = g
	return nil
}

func writeLine(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line); err != nil {
		return err
	}
	_, err := w.Write(newline)
	return err
}

// WordsGenerator writes lines of space separated words.
type WordsGenerator struct {
	Pool    []string
	PerLine lorem.Range
	base
}

func (g *WordsGenerator) Init(r *rand.Rand) error {
	if err := g.PerLine.Validate("words per line", 1); err != nil {
		return err
	}
	return g.init(r, g.Pool)
}

func (g *WordsGenerator) WriteLine(w io.Writer) error {
	g.buf.Reset()
	for i := range g.PerLine.Pick(g.src) {
		if i > 0 {
			g.buf.WriteByte(' ')
		}
		word, err := g.gen.Word(nil)
		if err != nil {
			return err
		}
		g.buf.WriteString(word)
	}
	return writeLine(w, g.buf.String())
}

func (g *WordsGenerator) Description() string {
	return "Space separated words, " + g.PerLine.String() + " per line"
}

func (g *WordsGenerator) DefaultCount() int64 {
	return 1e5
}

// SentencesGenerator writes one sentence per line.
type SentencesGenerator struct {
	Pool []string
	base
}

func (g *SentencesGenerator) Init(r *rand.Rand) error {
	return g.init(r, g.Pool)
}

func (g *SentencesGenerator) WriteLine(w io.Writer) error {
	s, err := g.gen.Sentence(lorem.DefaultCommaRange, lorem.DefaultWordRange)
	if err != nil {
		return err
	}
	return writeLine(w, s)
}

func (g *SentencesGenerator) Description() string {
	return "One sentence per line"
}

func (g *SentencesGenerator) DefaultCount() int64 {
	return 1e5
}

// ParagraphsGenerator writes one paragraph per line.
type ParagraphsGenerator struct {
	Pool []string
	base
}

func (g *ParagraphsGenerator) Init(r *rand.Rand) error {
	return g.init(r, g.Pool)
}

func (g *ParagraphsGenerator) WriteLine(w io.Writer) error {
	p, err := g.gen.Paragraph(lorem.DefaultCommaRange, lorem.DefaultWordRange, lorem.DefaultSentenceRange)
	if err != nil {
		return err
	}
	return writeLine(w, p)
}

func (g *ParagraphsGenerator) Description() string {
	return "One paragraph per line"
}

func (g *ParagraphsGenerator) DefaultCount() int64 {
	return 1e4
}
