package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pkg.jsn.cam/lorem/pkg/lorem"
	"pkg.jsn.cam/lorem/pkg/protocol"
)

type kind struct {
	use   string
	short string
	kind  protocol.Kind
}

var (
	kindWord      = kind{"word", "Generate random words", protocol.KindWords}
	kindSentence  = kind{"sentence", "Generate random sentences", protocol.KindSentences}
	kindParagraph = kind{"paragraph", "Generate random paragraphs", protocol.KindParagraphs}
)

type genFlags struct {
	count     int
	countMin  int
	countMax  int
	comma     string
	words     string
	sentences string
	sep       string
	transform string
	vocab     string
	seed      uint64
	list      bool
	copy      bool
}

func (a *app) generateCmd(k kind) *cobra.Command {
	var f genFlags

	cmd := &cobra.Command{
		Use:     k.use,
		Aliases: []string{string(k.kind)},
		Short:   k.short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, k.kind)
			if err != nil {
				return err
			}
			out, err := a.generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if f.copy {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				a.logger.Debug("copied to clipboard", zap.Int("bytes", len(out)))
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.count, "count", "n", 1, "number of items")
	fl.IntVar(&f.countMin, "count-min", 0, "lower bound of a random count (with --count-max)")
	fl.IntVar(&f.countMax, "count-max", 0, "upper bound of a random count")
	fl.StringVar(&f.sep, "sep", "", "separator between items (default \" \", \"\\n\" for paragraphs)")
	fl.StringVar(&f.vocab, "vocab", "", "name of a stored vocabulary to draw words from")
	fl.Uint64Var(&f.seed, "seed", 0, "seed for reproducible output")
	fl.BoolVar(&f.list, "list", false, "print one item per line instead of joining")
	fl.BoolVar(&f.copy, "copy", false, "also copy the output to the clipboard")
	if k.kind == protocol.KindWords {
		fl.StringVarP(&f.transform, "transform", "t", "", "word transform, e.g. upper or replace:o,0 (see 'lorem version --ops')")
	} else {
		fl.StringVar(&f.comma, "comma", "", "range of commas per sentence, \"n\" or \"min,max\"")
		fl.StringVar(&f.words, "words", "", "range of words per clause")
	}
	if k.kind == protocol.KindParagraphs {
		fl.StringVar(&f.sentences, "sentences", "", "range of sentences per paragraph")
	}
	return cmd
}

// request turns the parsed flags into the same request the server accepts,
// so local and remote runs share one code path for validation.
func (f *genFlags) request(cmd *cobra.Command, k protocol.Kind) (protocol.GenerateRequest, error) {
	req := protocol.GenerateRequest{Kind: k, Vocabulary: f.vocab, Join: !f.list}

	fl := cmd.Flags()
	switch {
	case fl.Changed("count-min") || fl.Changed("count-max"):
		req.CountMin, req.CountMax = f.countMin, f.countMax
		if req.CountMin == 0 {
			req.CountMin = 1
		}
	default:
		req.Count = f.count
		if f.count == 0 {
			return req, fmt.Errorf("%w: --count must be at least 1", lorem.ErrInvalidRange)
		}
	}

	for _, p := range []struct {
		flag string
		val  string
		dst  **lorem.Range
	}{
		{"comma", f.comma, &req.Comma},
		{"words", f.words, &req.Words},
		{"sentences", f.sentences, &req.Sentences},
	} {
		if p.val == "" {
			continue
		}
		r, err := lorem.ParseRange(p.val)
		if err != nil {
			return req, fmt.Errorf("--%s: %w", p.flag, err)
		}
		*p.dst = &r
	}

	if fl.Changed("sep") {
		sep := unescape(f.sep)
		req.Separator = &sep
	}
	if fl.Changed("seed") {
		seed := f.seed
		req.Seed = &seed
	}
	if f.transform != "" {
		name, args, found := strings.Cut(f.transform, ":")
		req.Transform = name
		if found {
			req.Args = strings.Split(args, ",")
		}
	}
	return req, nil
}

// unescape lets --sep '\n' and --sep '\t' mean the control characters.
func unescape(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r").Replace(s)
}

func (a *app) generate(ctx context.Context, req protocol.GenerateRequest) (string, error) {
	if a.remote != "" {
		resp, err := a.client().Generate(ctx, req)
		if err != nil {
			return "", err
		}
		if req.Join {
			return resp.Text, nil
		}
		return strings.Join(resp.Items, "\n"), nil
	}

	opts, err := req.Options()
	if err != nil {
		return "", err
	}
	opts = append(opts, lorem.WithLogger(a.logger))

	if req.Vocabulary != "" {
		st, err := a.openStore()
		if err != nil {
			return "", err
		}
		defer st.Close()
		v, err := st.Get(ctx, req.Vocabulary)
		if err != nil {
			return "", err
		}
		opts = append(opts, lorem.WithPool(v.Words))
	}
	a.logger.Debug("generating", zap.String("kind", string(req.Kind)), zap.String("settings", lorem.Describe(opts...)))

	var s *lorem.Stream
	switch req.Kind {
	case protocol.KindWords:
		s, err = lorem.Words(opts...)
	case protocol.KindSentences:
		s, err = lorem.Sentences(opts...)
	default:
		s, err = lorem.Paragraphs(opts...)
	}
	if err != nil {
		return "", err
	}
	if req.Join {
		return s.Join()
	}
	items, err := s.Collect()
	return strings.Join(items, "\n"), err
}
