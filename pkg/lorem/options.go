package lorem

import (
	"slices"

	"go.uber.org/zap"
)

// Option customizes a Generator or a batch call.
type Option func(*settings)

type settings struct {
	pool      []string
	src       Source
	logger    *zap.Logger
	defaults  *Defaults
	dupe      int
	transform Transform

	count     *Range
	comma     *Range
	words     *Range
	sentences *Range
	sep       *string
}

// WithPool replaces the vocabulary for this call or generator.
func WithPool(pool []string) Option {
	return func(s *settings) {
		s.pool = slices.Clone(pool)
		if s.pool == nil {
			s.pool = []string{}
		}
	}
}

// WithSource injects the random source.
func WithSource(src Source) Option {
	return func(s *settings) {
		if src != nil {
			s.src = src
		}
	}
}

// WithLogger attaches a logger for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaults reads unset parameters from d instead of Global().
func WithDefaults(d *Defaults) Option {
	return func(s *settings) {
		if d != nil {
			s.defaults = d
		}
	}
}

// WithDupe sets the duplication factor of a Generator's cycler. Batch
// calls size their own cycler and ignore it.
func WithDupe(n int) Option {
	return func(s *settings) { s.dupe = n }
}

// WithCount requests exactly n items.
func WithCount(n int) Option {
	return func(s *settings) {
		r := Exactly(n)
		s.count = &r
	}
}

// WithCountRange requests a random number of items in [min, max],
// resolved once before generation starts.
func WithCountRange(min, max int) Option {
	return func(s *settings) { s.count = &Range{Min: min, Max: max} }
}

// WithComma sets the comma budget range per sentence.
func WithComma(min, max int) Option {
	return func(s *settings) { s.comma = &Range{Min: min, Max: max} }
}

// WithWordRange sets the number of words per clause.
func WithWordRange(min, max int) Option {
	return func(s *settings) { s.words = &Range{Min: min, Max: max} }
}

// WithSentenceRange sets the number of sentences per paragraph.
func WithSentenceRange(min, max int) Option {
	return func(s *settings) { s.sentences = &Range{Min: min, Max: max} }
}

// WithSeparator sets the join separator for Get* calls.
func WithSeparator(sep string) Option {
	return func(s *settings) { s.sep = &sep }
}

// WithTransform applies t to every word produced by Words and GetWords.
// The sentence and paragraph operations reject it with ErrInvalidArgument.
func WithTransform(t Transform) Option {
	return func(s *settings) { s.transform = t }
}

// resolved is a settings value with every default filled in.
type resolved struct {
	pool      []string
	src       Source
	logger    *zap.Logger
	dupe      int
	transform Transform

	count     Range
	comma     Range
	words     Range
	sentences Range
	sep       string
	paraSep   string
}

func resolve(opts []Option) resolved {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	d := s.defaults
	if d == nil {
		d = Global()
	}
	v := d.Snapshot()

	r := resolved{
		pool:      v.Pool,
		src:       s.src,
		logger:    s.logger,
		dupe:      s.dupe,
		transform: s.transform,
		count:     Exactly(1),
		comma:     v.CommaRange,
		words:     v.WordRange,
		sentences: v.SentenceRange,
		sep:       v.Separator,
		paraSep:   v.ParagraphSeparator,
	}
	if s.pool != nil {
		r.pool = s.pool
	}
	if r.src == nil {
		r.src = NewSource(nil)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.dupe == 0 {
		r.dupe = 1
	}
	if s.count != nil {
		r.count = *s.count
	}
	if s.comma != nil {
		r.comma = *s.comma
	}
	if s.words != nil {
		r.words = *s.words
	}
	if s.sentences != nil {
		r.sentences = *s.sentences
	}
	if s.sep != nil {
		r.sep = *s.sep
		r.paraSep = *s.sep
	}
	return r
}
