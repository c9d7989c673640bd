package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/protocol"
)

// vocabBackend hides whether vocabularies live in the local store or on a server.
type vocabBackend interface {
	put(ctx context.Context, name string, words []string) (protocol.Vocabulary, error)
	get(ctx context.Context, name string) (protocol.Vocabulary, error)
	list(ctx context.Context) ([]protocol.Vocabulary, error)
	remove(ctx context.Context, name string) error
	io.Closer
}

type localVocab struct{ st *store.Store }

func fromStore(v store.Vocabulary) protocol.Vocabulary {
	return protocol.Vocabulary{
		ID:        v.ID.String(),
		Name:      v.Name,
		Words:     v.Words,
		Size:      len(v.Words),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (l localVocab) put(ctx context.Context, name string, words []string) (protocol.Vocabulary, error) {
	v, err := l.st.Put(ctx, name, words)
	return fromStore(v), err
}

func (l localVocab) get(ctx context.Context, name string) (protocol.Vocabulary, error) {
	v, err := l.st.Get(ctx, name)
	return fromStore(v), err
}

func (l localVocab) list(ctx context.Context) ([]protocol.Vocabulary, error) {
	vs, err := l.st.List(ctx)
	out := make([]protocol.Vocabulary, len(vs))
	for i, v := range vs {
		out[i] = fromStore(v)
	}
	return out, err
}

func (l localVocab) remove(ctx context.Context, name string) error { return l.st.Delete(ctx, name) }
func (l localVocab) Close() error                                 { return l.st.Close() }

type remoteVocab struct{ a *app }

func (r remoteVocab) put(ctx context.Context, name string, words []string) (protocol.Vocabulary, error) {
	v, err := r.a.client().PutVocabulary(ctx, name, words)
	if err != nil {
		return protocol.Vocabulary{}, err
	}
	return *v, nil
}

func (r remoteVocab) get(ctx context.Context, name string) (protocol.Vocabulary, error) {
	v, err := r.a.client().GetVocabulary(ctx, name)
	if err != nil {
		return protocol.Vocabulary{}, err
	}
	return *v, nil
}

func (r remoteVocab) list(ctx context.Context) ([]protocol.Vocabulary, error) {
	return r.a.client().ListVocabularies(ctx)
}

func (r remoteVocab) remove(ctx context.Context, name string) error {
	return r.a.client().DeleteVocabulary(ctx, name)
}

func (r remoteVocab) Close() error { return nil }

func (a *app) vocabs() (vocabBackend, error) {
	if a.remote != "" {
		return remoteVocab{a}, nil
	}
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return localVocab{st}, nil
}

// withVocabs opens the backend for the duration of fn.
func (a *app) withVocabs(fn func(vocabBackend) error) error {
	vb, err := a.vocabs()
	if err != nil {
		return err
	}
	defer vb.Close()
	return fn(vb)
}

func (a *app) vocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vocab",
		Aliases: []string{"vocabulary"},
		Short:   "Manage named custom vocabularies",
	}
	cmd.AddCommand(a.vocabAddCmd(), a.vocabListCmd(), a.vocabShowCmd(), a.vocabRmCmd())
	return cmd
}

func (a *app) vocabAddCmd() *cobra.Command {
	var words []string

	cmd := &cobra.Command{
		Use:   "add NAME [FILE|-]",
		Short: "Create or replace a vocabulary",
		Long: `Stores a vocabulary under NAME. Words come from --words, or from FILE
(whitespace separated, # comments), or from stdin when FILE is "-".`,
		Example: `  lorem vocab add greek --words alpha,beta,gamma
  lorem vocab add latin words.txt
  cat words.txt | lorem vocab add latin -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				var r io.Reader = cmd.InOrStdin()
				if args[1] != "-" {
					f, err := os.Open(args[1])
					if err != nil {
						return err
					}
					defer f.Close()
					r = f
				}
				parsed, err := store.ParseWords(r)
				if err != nil {
					return err
				}
				words = append(words, parsed...)
			}

			return a.withVocabs(func(vb vocabBackend) error {
				v, err := vb.put(cmd.Context(), args[0], words)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored vocabulary %s (%s words, id %s)\n",
					v.Name, humanize.Comma(int64(v.Size)), v.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&words, "words", "w", nil, "comma separated words")
	return cmd
}

func (a *app) vocabListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored vocabularies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVocabs(func(vb vocabBackend) error {
				vs, err := vb.list(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(vs) == 0 {
					fmt.Fprintln(out, "No vocabularies stored.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tWORDS\tUPDATED\tID")
				for _, v := range vs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, humanize.Comma(int64(v.Size)), since(v.UpdatedAt), v.ID)
				}
				return tw.Flush()
			})
		},
	}
}

func since(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func (a *app) vocabShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print the words of a vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVocabs(func(vb vocabBackend) error {
				v, err := vb.get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s: %s words, created %s\n", v.Name, humanize.Comma(int64(v.Size)), since(v.CreatedAt))
				fmt.Fprintln(out, strings.Join(v.Words, " "))
				return nil
			})
		},
	}
}

func (a *app) vocabRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a vocabulary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVocabs(func(vb vocabBackend) error {
				if err := vb.remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted vocabulary %s\n", args[0])
				return nil
			})
		},
	}
}
