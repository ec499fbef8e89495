package completion

import (
	"bytes"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// ContextFile is the on-disk form of a completion context
type ContextFile struct {
	Variables []*ContextFile_Variable `json:"variables" hcl:"variable,block" yaml:"variables"`
	Filters   []string                `json:"filters,omitempty" hcl:"filters,optional" yaml:"filters,omitempty"`
}

type ContextFile_Variable struct {
	Name    string   `json:"name" hcl:"name,label" yaml:"name"`
	Members []string `json:"members,omitempty" hcl:"members,optional" yaml:"members,omitempty"`
}

// LoadContext reads a completion context from a YAML (.yaml, .yml) or HCL file
func LoadContext(fs afero.Fs, path string) (*StaticContext, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading context file: %w", err)
	}

	cfg, err := ParseContextFile(data, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid context file %s: %w", path, err)
	}

	return cfg.Context(), nil
}

// ParseContextFile decodes data, picking the format from the suffix of path
func ParseContextFile(data []byte, path string) (*ContextFile, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg ContextFile
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg ContextFile
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// Validate reports every problem in the file at once
func (me *ContextFile) Validate() error {
	var result *multierror.Error

	seen := make(map[string]bool, len(me.Variables))
	for i, v := range me.Variables {
		if v == nil || strings.TrimSpace(v.Name) == "" {
			result = multierror.Append(result, errors.Errorf("variable %d has no name", i))
			continue
		}
		if seen[v.Name] {
			result = multierror.Append(result, errors.Errorf("variable %q declared twice", v.Name))
		}
		seen[v.Name] = true
		for _, m := range v.Members {
			if strings.TrimSpace(m) == "" {
				result = multierror.Append(result, errors.Errorf("variable %q has an empty member", v.Name))
			}
		}
	}

	for i, f := range me.Filters {
		if strings.TrimSpace(f) == "" {
			result = multierror.Append(result, errors.Errorf("filter %d is empty", i))
		}
	}

	return result.ErrorOrNil()
}

// Context converts the file into a StaticContext
func (me *ContextFile) Context() *StaticContext {
	ctx := NewStaticContext()
	for _, v := range me.Variables {
		if v == nil {
			continue
		}
		ctx.WithMembers(v.Name, v.Members...)
	}
	ctx.WithFilters(me.Filters...)
	return ctx
}
