package lorem

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"go.uber.org/zap"
)

// MaxDupe caps the duplication factor of a batch cycler. Requests with a
// larger token demand reshuffle while they run instead.
const MaxDupe = 4096

// Stream yields a fixed number of generated items.
//
//	s, err := lorem.Sentences(lorem.WithCount(3))
//	for s.Next() {
//		fmt.Println(s.Text())
//	}
//	if err := s.Err(); err != nil { ... }
type Stream struct {
	gen       func() (string, error)
	sep       string
	remaining int
	cur       string
	err       error
}

func newStream(n int, sep string, gen func() (string, error)) *Stream {
	return &Stream{gen: gen, sep: sep, remaining: n}
}

// Next advances to the next item. It returns false when the stream is
// exhausted or an item failed.
func (s *Stream) Next() bool {
	if s.err != nil || s.remaining == 0 {
		return false
	}
	v, err := s.gen()
	if err != nil {
		s.err = err
		s.remaining = 0
		return false
	}
	s.cur = v
	s.remaining--
	return true
}

// Text returns the current item.
func (s *Stream) Text() string {
	return s.cur
}

// Err returns the first error raised while generating, if any.
func (s *Stream) Err() error {
	return s.err
}

// Remaining returns how many items are still to come.
func (s *Stream) Remaining() int {
	return s.remaining
}

// All ranges over the remaining items. Check Err afterwards.
func (s *Stream) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for s.Next() {
			if !yield(s.cur) {
				return
			}
		}
	}
}

// Collect drains the stream.
func (s *Stream) Collect() ([]string, error) {
	out := make([]string, 0, s.remaining)
	for s.Next() {
		out = append(out, s.cur)
	}
	return out, s.err
}

// Join drains the stream and joins the items with the separator the stream
// was created with: the word separator for words and sentences, the
// paragraph separator for paragraphs.
func (s *Stream) Join() (string, error) {
	items, err := s.Collect()
	if err != nil {
		return "", err
	}
	return strings.Join(items, s.sep), nil
}

// Words returns a stream of random words.
func Words(opts ...Option) (*Stream, error) {
	return words(resolve(opts))
}

// Sentences returns a stream of random sentences.
func Sentences(opts ...Option) (*Stream, error) {
	return sentences(resolve(opts))
}

// Paragraphs returns a stream of random paragraphs.
func Paragraphs(opts ...Option) (*Stream, error) {
	return paragraphs(resolve(opts))
}

// GetWords returns random words joined by the separator (default " ").
func GetWords(opts ...Option) (string, error) {
	s, err := words(resolve(opts))
	if err != nil {
		return "", err
	}
	return s.Join()
}

// GetSentences returns random sentences joined by the separator
// (default " ").
func GetSentences(opts ...Option) (string, error) {
	s, err := sentences(resolve(opts))
	if err != nil {
		return "", err
	}
	return s.Join()
}

// GetParagraphs returns random paragraphs joined by the paragraph
// separator (default "\n").
func GetParagraphs(opts ...Option) (string, error) {
	s, err := paragraphs(resolve(opts))
	if err != nil {
		return "", err
	}
	return s.Join()
}

func words(r resolved) (*Stream, error) {
	n, err := resolveCount(r)
	if err != nil {
		return nil, err
	}
	g, err := newGenerator(r, dupeFor(n, len(r.pool)))
	if err != nil {
		return nil, err
	}
	logBatch(r.logger, "words", n, g)

	return newStream(n, r.sep, func() (string, error) {
		return g.Word(r.transform)
	}), nil
}

func sentences(r resolved) (*Stream, error) {
	if err := validateSentence(r.comma, r.words); err != nil {
		return nil, err
	}
	if r.transform != nil {
		return nil, fmt.Errorf("%w: transforms apply to words only", ErrInvalidArgument)
	}
	n, err := resolveCount(r)
	if err != nil {
		return nil, err
	}
	demand := SentenceDemand(n, r.comma, r.words)
	g, err := newGenerator(r, dupeFor(demand, len(r.pool)))
	if err != nil {
		return nil, err
	}
	logBatch(r.logger, "sentences", n, g)

	return newStream(n, r.sep, func() (string, error) {
		return g.sentence(r.comma, r.words), nil
	}), nil
}

func paragraphs(r resolved) (*Stream, error) {
	if err := validateParagraph(r.comma, r.words, r.sentences); err != nil {
		return nil, err
	}
	if r.transform != nil {
		return nil, fmt.Errorf("%w: transforms apply to words only", ErrInvalidArgument)
	}
	n, err := resolveCount(r)
	if err != nil {
		return nil, err
	}
	demand := ParagraphDemand(n, r.comma, r.words, r.sentences)
	g, err := newGenerator(r, dupeFor(demand, len(r.pool)))
	if err != nil {
		return nil, err
	}
	logBatch(r.logger, "paragraphs", n, g)

	return newStream(n, r.paraSep, func() (string, error) {
		return g.paragraph(r.comma, r.words, r.sentences), nil
	}), nil
}

func resolveCount(r resolved) (int, error) {
	if err := r.count.Validate("count", 1); err != nil {
		return 0, err
	}
	if err := ValidatePool(r.pool); err != nil {
		return 0, err
	}
	return r.count.Pick(r.src), nil
}

// dupeFor sizes a cycler so one batch rarely needs to reshuffle.
func dupeFor(demand, poolSize int) int {
	if poolSize <= 0 {
		return 1
	}
	d := demand / poolSize
	if demand%poolSize != 0 {
		d++
	}
	return max(1, min(d, MaxDupe))
}

// SentenceDemand is an upper bound on the tokens n sentences draw.
func SentenceDemand(n int, comma, words Range) int {
	return mulSat(n, words.Max, incSat(comma.Max))
}

// ParagraphDemand is an upper bound on the tokens n paragraphs draw.
func ParagraphDemand(n int, comma, words, sentences Range) int {
	return mulSat(SentenceDemand(n, comma, words), sentences.Max)
}

func incSat(v int) int {
	if v == math.MaxInt {
		return v
	}
	return v + 1
}

// mulSat multiplies non-negative factors, saturating at math.MaxInt.
func mulSat(factors ...int) int {
	p := 1
	for _, f := range factors {
		if f <= 0 {
			return 0
		}
		if p > math.MaxInt/f {
			return math.MaxInt
		}
		p *= f
	}
	return p
}

func logBatch(logger *zap.Logger, kind string, n int, g *Generator) {
	if ce := logger.Check(zap.DebugLevel, "batch started"); ce != nil {
		ce.Write(
			zap.String("kind", kind),
			zap.Int("count", n),
			zap.Int("multiset", g.cycler.Len()),
		)
	}
}

// Describe renders the resolved parameters of opts for logging.
func Describe(opts ...Option) string {
	r := resolve(opts)
	return fmt.Sprintf("count=%s comma=%s words=%s sentences=%s pool=%d",
		r.count, r.comma, r.words, r.sentences, len(r.pool))
}
