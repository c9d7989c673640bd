package lorem

import "sync"

// Values is a plain copy of generation defaults.
type Values struct {
	Pool               []string
	WordRange          Range
	CommaRange         Range
	SentenceRange      Range
	Separator          string
	ParagraphSeparator string
}

// DefaultValues returns the built-in defaults.
func DefaultValues() Values {
	return Values{
		Pool:               clonePool(DefaultPool),
		WordRange:          DefaultWordRange,
		CommaRange:         DefaultCommaRange,
		SentenceRange:      DefaultSentenceRange,
		Separator:          " ",
		ParagraphSeparator: "\n",
	}
}

// Validate checks every field the generators depend on.
func (v Values) Validate() error {
	if err := ValidatePool(v.Pool); err != nil {
		return err
	}
	if err := v.WordRange.Validate("word", 1); err != nil {
		return err
	}
	if err := v.CommaRange.Validate("comma", 0); err != nil {
		return err
	}
	return v.SentenceRange.Validate("sentence", 1)
}

// Defaults holds the generation defaults used when a call does not set a
// parameter explicitly. It is safe for concurrent use.
//
// The process-wide instance returned by Global starts with the built-in
// values; Set* and Apply replace them and Reset restores them.
type Defaults struct {
	mu sync.RWMutex
	v  Values
}

// NewDefaults returns a Defaults holding the built-in values.
func NewDefaults() *Defaults {
	return &Defaults{v: DefaultValues()}
}

var global = NewDefaults()

// Global returns the process-wide defaults.
func Global() *Defaults {
	return global
}

// Snapshot returns a copy of the current values.
func (d *Defaults) Snapshot() Values {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v := d.v
	v.Pool = clonePool(d.v.Pool)
	return v
}

// SetPool replaces the default vocabulary.
func (d *Defaults) SetPool(pool []string) error {
	if err := ValidatePool(pool); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.v.Pool = clonePool(pool)
	return nil
}

// SetRanges replaces the default word, comma and sentence ranges.
func (d *Defaults) SetRanges(words, comma, sentences Range) error {
	v := d.Snapshot()
	v.WordRange, v.CommaRange, v.SentenceRange = words, comma, sentences
	return d.Apply(v)
}

// SetSeparators replaces the join separators.
func (d *Defaults) SetSeparators(sep, paragraphSep string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.v.Separator = sep
	d.v.ParagraphSeparator = paragraphSep
}

// Apply validates v and installs it as a whole.
func (d *Defaults) Apply(v Values) error {
	if err := v.Validate(); err != nil {
		return err
	}
	v.Pool = clonePool(v.Pool)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.v = v
	return nil
}

// Reset restores the built-in values.
func (d *Defaults) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.v = DefaultValues()
}
