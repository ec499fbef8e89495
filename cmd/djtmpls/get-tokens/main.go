package get_tokens

import (
	"context"
	"encoding/json"
	"io"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/djtmpls/pkg/document"
	"github.com/walteh/djtmpls/pkg/finder"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
)

const defaultTabWidth = 4

type Handler struct {
	fs       afero.Fs
	out      io.Writer
	patterns []string
	tabWidth int  // overrides .editorconfig when positive
	encode   bool // also emit the relative encoding editors consume
}

// Token is one classified span with a human readable location
type Token struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// FileTokens is the output for one template
type FileTokens struct {
	File   string   `json:"file"`
	Tokens []Token  `json:"tokens"`
	Legend []string `json:"legend,omitempty"`
	Data   []uint32 `json:"data,omitempty"`
}

func NewGetTokensCommand() *cobra.Command {
	me := &Handler{}

	var root string

	cmd := &cobra.Command{
		Use:   "get-tokens [glob...]",
		Long:  "with no globs, every .html, .djhtml and .txt file under the root is tokenized",
		Short: "print the classified spans of every block and variable tag in the matching templates",
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory the globs are relative to")
	cmd.Flags().IntVar(&me.tabWidth, "tab-width", 0, "tab width for columns, read from .editorconfig when unset")
	cmd.Flags().BoolVar(&me.encode, "encode", false, "include the relative semantic token encoding")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.fs = afero.NewBasePathFs(afero.NewOsFs(), root)
		me.out = cmd.OutOrStdout()
		me.patterns = args
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	files, err := finder.FindTemplates(me.fs, me.patterns)
	if err != nil {
		return errors.Errorf("finding templates: %w", err)
	}

	ec := me.editorConfig(ctx)

	var errs error
	results := make([]FileTokens, 0, len(files))
	for _, file := range files {
		content, err := afero.ReadFile(me.fs, file)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("reading %s: %w", file, err))
			continue
		}
		results = append(results, me.tokens(ctx, file, string(content), me.tabWidthFor(ctx, ec, file)))
	}

	zerolog.Ctx(ctx).Debug().
		Int("files", len(files)).
		Int("failed", len(multierr.Errors(errs))).
		Msg("tokenized templates")

	encoder := json.NewEncoder(me.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return errors.Errorf("failed to encode tokens: %w", err)
	}

	return errs
}

func (me *Handler) tokens(ctx context.Context, file, content string, tabWidth int) FileTokens {
	doc := document.Parse(ctx, content)
	spans := doc.Tokens()

	result := FileTokens{
		File:   file,
		Tokens: make([]Token, 0, len(spans)),
	}

	for _, span := range spans {
		line, col := span.Range.GetLineAndColumn(content)
		result.Tokens = append(result.Tokens, Token{
			Type:   span.Type.String(),
			Text:   span.Range.Text,
			Offset: span.Range.Offset,
			Line:   line + 1,
			Column: position.VisualColumn(position.LineAt(content, span.Range.Offset), col, tabWidth) + 1,
		})
	}

	if me.encode {
		result.Legend = semtok.Legend()
		result.Data = semtok.Encode(content, spans)
	}

	return result
}

// editorConfig reads .editorconfig from the root, if there is one
func (me *Handler) editorConfig(ctx context.Context) *editorconfig.Editorconfig {
	f, err := me.fs.Open(".editorconfig")
	if err != nil {
		return nil
	}
	defer f.Close()

	ec, err := editorconfig.Parse(f)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("ignoring unreadable .editorconfig")
		return nil
	}
	return ec
}

func (me *Handler) tabWidthFor(ctx context.Context, ec *editorconfig.Editorconfig, file string) int {
	if me.tabWidth > 0 {
		return me.tabWidth
	}
	if ec == nil {
		return defaultTabWidth
	}

	def, err := ec.GetDefinitionForFilename(file)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", file).Msg("no editorconfig definition")
		return defaultTabWidth
	}
	if def.TabWidth > 0 {
		return def.TabWidth
	}
	return defaultTabWidth
}
