package watch_cmd

import (
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/djtmpls/pkg/block"
	"github.com/walteh/djtmpls/pkg/document"
	"github.com/walteh/djtmpls/pkg/watch"
)

type Handler struct {
	fs       afero.Fs
	out      io.Writer
	dir      string
	patterns []string
	debounce time.Duration

	mu sync.Mutex
}

// Report is written as one json line per changed template. Unknown lists the commands
// that have no grammar, such as end tags and custom tags.
type Report struct {
	File    string   `json:"file"`
	Tags    int      `json:"tags"`
	Tokens  int      `json:"tokens"`
	Unknown []string `json:"unknown,omitempty"`
}

func NewWatchCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "re-tokenize templates as they change and report what was found",
	}

	cmd.Flags().StringSliceVar(&me.patterns, "pattern", []string{"**/*.html", "**/*.txt"}, "globs of the templates to watch, relative to dir")
	cmd.Flags().DurationVar(&me.debounce, "debounce", watch.DefaultDebounce, "quiet time before changes are processed")

	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.fs = afero.NewOsFs()
		me.out = cmd.OutOrStdout()
		me.dir = args[0]

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return me.Run(ctx)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	w := watch.New(me.dir, watch.Options{
		Patterns: me.patterns,
		Debounce: me.debounce,
	}, func(ctx context.Context, paths []string) {
		if err := me.Process(ctx, paths); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("processing changed templates")
		}
	})

	if err := w.Run(ctx); err != nil {
		return errors.Errorf("watching %s: %w", me.dir, err)
	}
	return nil
}

// Process parses each path and writes its report; a path that cannot be read does not
// stop the others
func (me *Handler) Process(ctx context.Context, paths []string) error {
	me.mu.Lock()
	defer me.mu.Unlock()

	encoder := json.NewEncoder(me.out)

	var errs error
	for _, path := range paths {
		content, err := afero.ReadFile(me.fs, path)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("reading %s: %w", path, err))
			continue
		}

		report := buildReport(ctx, path, string(content))
		if err := encoder.Encode(report); err != nil {
			errs = multierr.Append(errs, errors.Errorf("writing report for %s: %w", path, err))
		}
	}
	return errs
}

func buildReport(ctx context.Context, path, content string) Report {
	doc := document.Parse(ctx, content)

	report := Report{
		File:   path,
		Tags:   len(doc.Tags),
		Tokens: len(doc.Tokens()),
	}

	seen := map[string]bool{}
	for _, blk := range doc.Blocks() {
		cmd := blk.Info().Command
		if _, ok := block.Lookup(cmd); ok || seen[cmd] {
			continue
		}
		seen[cmd] = true
		report.Unknown = append(report.Unknown, cmd)
	}

	return report
}
