package protocol

import (
	"fmt"
	"time"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

// Kind selects which batch operation a request runs.
type Kind string

const (
	KindWords      Kind = "words"
	KindSentences  Kind = "sentences"
	KindParagraphs Kind = "paragraphs"
)

// ParseKind accepts the plural kind names and their singular forms.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "words", "word":
		return KindWords, nil
	case "sentences", "sentence":
		return KindSentences, nil
	case "paragraphs", "paragraph":
		return KindParagraphs, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// GenerateRequest describes one batch call. Nil fields fall back to the
// server's defaults.
type GenerateRequest struct {
	Kind       Kind         `json:"kind,omitempty"`
	Count      int          `json:"count,omitempty"`
	CountMin   int          `json:"count_min,omitempty"`
	CountMax   int          `json:"count_max,omitempty"`
	Comma      *lorem.Range `json:"comma,omitempty"`
	Words      *lorem.Range `json:"words,omitempty"`
	Sentences  *lorem.Range `json:"sentences,omitempty"`
	Separator  *string      `json:"separator,omitempty"`
	Transform  string       `json:"transform,omitempty"`
	Args       []string     `json:"args,omitempty"`
	Vocabulary string       `json:"vocabulary,omitempty"`
	Seed       *uint64      `json:"seed,omitempty"`
	Join       bool         `json:"join,omitempty"`
}

// Demand is the number of items the request asks for at most.
func (r GenerateRequest) Demand() int {
	if r.CountMin > 0 || r.CountMax > 0 {
		return r.CountMax
	}
	if r.Count == 0 {
		return 1
	}
	return r.Count
}

// Tokens is an upper bound on the words the request draws. Ranges the
// request leaves unset are taken from d.
func (r GenerateRequest) Tokens(d lorem.Values) int {
	comma, words, sentences := d.CommaRange, d.WordRange, d.SentenceRange
	if r.Comma != nil {
		comma = *r.Comma
	}
	if r.Words != nil {
		words = *r.Words
	}
	if r.Sentences != nil {
		sentences = *r.Sentences
	}

	switch r.Kind {
	case KindSentences:
		return lorem.SentenceDemand(r.Demand(), comma, words)
	case KindParagraphs:
		return lorem.ParagraphDemand(r.Demand(), comma, words, sentences)
	}
	return r.Demand()
}

// Options converts the request into batch options. The vocabulary is not
// resolved here; callers append lorem.WithPool themselves.
func (r GenerateRequest) Options() ([]lorem.Option, error) {
	var opts []lorem.Option

	switch {
	case r.CountMin > 0 || r.CountMax > 0:
		countMin := r.CountMin
		if countMin == 0 {
			countMin = 1
		}
		opts = append(opts, lorem.WithCountRange(countMin, r.CountMax))
	case r.Count != 0:
		opts = append(opts, lorem.WithCount(r.Count))
	}
	if r.Comma != nil {
		opts = append(opts, lorem.WithComma(r.Comma.Min, r.Comma.Max))
	}
	if r.Words != nil {
		opts = append(opts, lorem.WithWordRange(r.Words.Min, r.Words.Max))
	}
	if r.Sentences != nil {
		opts = append(opts, lorem.WithSentenceRange(r.Sentences.Min, r.Sentences.Max))
	}
	if r.Separator != nil {
		opts = append(opts, lorem.WithSeparator(*r.Separator))
	}
	if r.Seed != nil {
		opts = append(opts, lorem.WithSource(lorem.NewSeededSource(*r.Seed)))
	}
	if r.Transform != "" {
		if r.Kind != KindWords {
			return nil, fmt.Errorf("%w: transform applies to words only", lorem.ErrInvalidArgument)
		}
		t, err := lorem.Named(r.Transform, r.Args...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lorem.WithTransform(t))
	}
	return opts, nil
}

// GenerateResponse carries either the individual items or the joined text.
type GenerateResponse struct {
	Kind    Kind     `json:"kind"`
	Items   []string `json:"items,omitempty"`
	Text    string   `json:"text,omitempty"`
	Count   int      `json:"count"`
	Version string   `json:"version"`
}

// VocabularyRequest is the body of PUT /api/vocabularies/{name}.
type VocabularyRequest struct {
	Words []string `json:"words"`
}

// Vocabulary is the wire form of a stored vocabulary.
type Vocabulary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Words     []string  `json:"words,omitempty"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VocabularyListResponse struct {
	Vocabularies []Vocabulary `json:"vocabularies"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
