package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/lorem/pkg/lorem"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Kind{
		"word": KindWords, "words": KindWords,
		"sentence": KindSentences, "paragraphs": KindParagraphs,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("chapters")
	assert.Error(t, err)
}

func TestGenerateRequest_Options(t *testing.T) {
	t.Parallel()

	sep := "|"
	seed := uint64(3)
	req := GenerateRequest{
		Kind:      KindWords,
		Count:     4,
		Separator: &sep,
		Seed:      &seed,
		Transform: "upper",
	}
	opts, err := req.Options()
	require.NoError(t, err)

	got, err := lorem.GetWords(append(opts, lorem.WithPool([]string{"a"}))...)
	require.NoError(t, err)
	assert.Equal(t, "A|A|A|A", got)
}

func TestGenerateRequest_OptionsDeterministic(t *testing.T) {
	t.Parallel()

	seed := uint64(42)
	req := GenerateRequest{Kind: KindSentences, CountMin: 2, CountMax: 4, Seed: &seed}

	run := func() string {
		opts, err := req.Options()
		require.NoError(t, err)
		s, err := lorem.GetSentences(append(opts, lorem.WithPool(lorem.DefaultPool))...)
		require.NoError(t, err)
		return s
	}
	assert.Equal(t, run(), run())
}

func TestGenerateRequest_OptionsErrors(t *testing.T) {
	t.Parallel()

	_, err := GenerateRequest{Kind: KindWords, Transform: "zfill"}.Options()
	assert.ErrorIs(t, err, lorem.ErrUnknownOperation)

	_, err = GenerateRequest{Kind: KindSentences, Transform: "upper"}.Options()
	assert.ErrorIs(t, err, lorem.ErrInvalidArgument)
}

func TestGenerateRequest_Demand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, GenerateRequest{}.Demand())
	assert.Equal(t, 7, GenerateRequest{Count: 7}.Demand())
	assert.Equal(t, 9, GenerateRequest{CountMin: 2, CountMax: 9}.Demand())
}

func TestGenerateRequest_CountMaxAlone(t *testing.T) {
	t.Parallel()

	req := GenerateRequest{Kind: KindWords, CountMax: 4}
	opts, err := req.Options()
	require.NoError(t, err)

	s, err := lorem.Words(append(opts, lorem.WithPool([]string{"a"}))...)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Remaining(), 1)
	assert.LessOrEqual(t, s.Remaining(), 4)
}

func TestGenerateRequest_Tokens(t *testing.T) {
	t.Parallel()

	d := lorem.DefaultValues()
	thousand := lorem.Exactly(1000)

	assert.Equal(t, 5, GenerateRequest{Kind: KindWords, Count: 5}.Tokens(d))
	assert.Equal(t, 2*8*3, GenerateRequest{Kind: KindSentences, Count: 2}.Tokens(d))
	assert.Equal(t, 8*3*10, GenerateRequest{Kind: KindParagraphs}.Tokens(d))

	big := GenerateRequest{Kind: KindParagraphs, Count: 10000, Words: &thousand, Sentences: &thousand}
	assert.Equal(t, 10000*1000*3*1000, big.Tokens(d))
}
