package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/lorem/cmd/testdata/generator"
	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/lorem"
)

// progressStep is how many lines are written between progress bar updates.
const progressStep = 1024

type options struct {
	kind     string
	lines    int64
	output   string
	seed     uint64
	poolFile string
	quiet    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "testdata",
		Short: "Write large lorem ipsum corpus files",
		Long:  "Writes filler text line by line, for load tests and fixtures.\n\nGenerators:\n" + describeGenerators(),

		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				o.seed = rand.Uint64()
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), o)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&o.kind, "kind", "k", "sentences", "generator to use")
	fl.Int64VarP(&o.lines, "lines", "n", 0, "number of lines (default depends on the generator)")
	fl.StringVarP(&o.output, "output", "o", "var/lorem.txt", "output file path")
	fl.Uint64Var(&o.seed, "seed", 0, "seed for reproducible output (random if unset)")
	fl.StringVar(&o.poolFile, "pool", "", "file of whitespace separated words to use instead of the built-in vocabulary")
	fl.BoolVarP(&o.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func describeGenerators() string {
	var s string
	for _, name := range generator.List() {
		g, _ := generator.Get(name, nil)
		s += fmt.Sprintf("  %-11s %s\n", name, g.Description())
	}
	return s
}

// countingWriter tracks how many bytes pass through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func run(stdout, stderr io.Writer, o options) error {
	var pool []string
	if o.poolFile != "" {
		f, err := os.Open(o.poolFile)
		if err != nil {
			return err
		}
		pool, err = store.ParseWords(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read pool %s: %w", o.poolFile, err)
		}
		if len(pool) == 0 {
			return fmt.Errorf("%w: %s has no words", lorem.ErrInvalidPool, o.poolFile)
		}
	}

	gen, err := generator.Get(o.kind, pool)
	if err != nil {
		return err
	}
	if err := gen.Init(rand.New(rand.NewPCG(o.seed, o.seed))); err != nil {
		return err
	}

	lines := o.lines
	if lines <= 0 {
		lines = gen.DefaultCount()
	}

	if err := os.MkdirAll(filepath.Dir(o.output), 0755); err != nil {
		return err
	}
	file, err := os.Create(o.output)
	if err != nil {
		return err
	}
	defer file.Close()

	bw := bufio.NewWriterSize(file, 1<<16)
	cw := &countingWriter{w: bw}

	bar := progressbar.NewOptions64(lines,
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription(o.kind),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetVisibility(!o.quiet),
	)

	start := time.Now()
	for i := int64(0); i < lines; i++ {
		if err := gen.WriteLine(cw); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if (i+1)%progressStep == 0 {
			_ = bar.Add64(progressStep)
		}
	}
	_ = bar.Finish()

	if err := bw.Flush(); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s lines (%s) to %s in %s\n",
		humanize.Comma(lines), humanize.Bytes(uint64(cw.n)), o.output,
		time.Since(start).Round(time.Millisecond))
	return nil
}
