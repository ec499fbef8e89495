package get_completions

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/document"
	"github.com/walteh/djtmpls/pkg/position"
)

type Handler struct {
	fs          afero.Fs
	out         io.Writer
	filePath    string
	location    string // byte offset, or line:column counted from 1
	contextFile string
}

func NewGetCompletionsCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "get-completions [file-path] [offset|line:column]",
		Short: "get completions for a position in a template file",
	}

	cmd.Flags().StringVar(&me.contextFile, "context", "", "hcl or yaml file describing the variables and filters available to the template")

	cmd.Args = cobra.ExactArgs(2)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.fs = afero.NewOsFs()
		me.out = cmd.OutOrStdout()
		me.filePath = args[0]
		me.location = args[1]
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	content, err := afero.ReadFile(me.fs, me.filePath)
	if err != nil {
		return errors.Errorf("failed to read template file: %w", err)
	}

	offset, err := resolveOffset(me.location, string(content))
	if err != nil {
		return err
	}

	var cctx completion.Context
	if me.contextFile != "" {
		sctx, err := completion.LoadContext(me.fs, me.contextFile)
		if err != nil {
			return errors.Errorf("failed to load completion context: %w", err)
		}
		cctx = sctx
	}

	doc := document.Parse(ctx, string(content))
	items := doc.Completions(cctx, offset)
	if items == nil {
		items = []completion.Item{}
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", me.filePath).
		Int("offset", offset).
		Int("items", len(items)).
		Msg("completed")

	if err := json.NewEncoder(me.out).Encode(items); err != nil {
		return errors.Errorf("failed to encode completions: %w", err)
	}

	return nil
}

// resolveOffset turns a byte offset or a 1-based line:column into a byte offset
func resolveOffset(location, content string) (int, error) {
	var offset int

	if lineStr, colStr, ok := strings.Cut(location, ":"); ok {
		line, err := strconv.Atoi(lineStr)
		if err != nil {
			return 0, errors.Errorf("invalid line number: %w", err)
		}
		col, err := strconv.Atoi(colStr)
		if err != nil {
			return 0, errors.Errorf("invalid column number: %w", err)
		}
		if line < 1 || col < 1 {
			return 0, errors.Errorf("line and column start at 1, got %s", location)
		}
		offset = position.NewRawPositionFromLineAndColumn(line-1, col-1, "", content).Offset
	} else {
		o, err := strconv.Atoi(location)
		if err != nil {
			return 0, errors.Errorf("invalid offset: %w", err)
		}
		offset = o
	}

	if offset < 0 || offset > len(content) {
		return 0, errors.Errorf("offset %d is outside the file (%d bytes)", offset, len(content))
	}
	return offset, nil
}
