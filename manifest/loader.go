package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/loomhdl/loom/internal/ctxlog"
	"github.com/loomhdl/loom/internal/fsutil"
)

// Loader discovers and decodes design manifests.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and returns the
// declared designs in file order. Design names must be unique across all
// loaded files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Design, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found.", "paths", paths)
		return nil, nil
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var designs []*Design
	declaredIn := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range root.Designs {
			design, err := l.translateDesign(block, file)
			if err != nil {
				return nil, err
			}
			if prev, dup := declaredIn[design.Name]; dup {
				return nil, fmt.Errorf("design '%s' declared in both %s and %s", design.Name, prev, file)
			}
			declaredIn[design.Name] = file
			designs = append(designs, design)
		}
		logger.Debug("Loaded manifest file.", "file", file, "designs", len(root.Designs))
	}

	logger.Info("Manifests loaded.", "files", len(files), "designs", len(designs))
	return designs, nil
}

// translateDesign turns a decoded design block into the model form,
// evaluating params down to concrete values.
func (l *Loader) translateDesign(block *designBlock, file string) (*Design, error) {
	if block.Name == "" {
		return nil, fmt.Errorf("design with empty name in %s", file)
	}
	if block.Generator == "" {
		return nil, fmt.Errorf("design '%s' in %s: generator must not be empty", block.Name, file)
	}

	params, err := translateParams(block.Params)
	if err != nil {
		return nil, fmt.Errorf("design '%s' in %s: %w", block.Name, file, err)
	}

	outputs := make([]Output, 0, len(block.Outputs))
	for _, out := range block.Outputs {
		if !validFormats[out.Format] {
			return nil, fmt.Errorf("design '%s' in %s: unsupported output format '%s' (want dot, json or yaml)",
				block.Name, file, out.Format)
		}
		if out.Path == "" {
			return nil, fmt.Errorf("design '%s' in %s: output path must not be empty", block.Name, file)
		}
		outputs = append(outputs, Output{Format: out.Format, Path: out.Path})
	}

	return &Design{
		Name:      block.Name,
		Generator: block.Generator,
		Params:    params,
		Outputs:   outputs,
		Strict:    block.Strict,
		File:      file,
	}, nil
}

// translateParams evaluates every attribute of the params block. With no
// eval context, only literals and operations on them are accepted;
// references to variables are evaluation errors.
func translateParams(block *paramsBlock) (map[string]cty.Value, error) {
	if block == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading params: %w", diags)
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating param '%s': %w", name, diags)
		}
		out[name] = val
	}
	return out, nil
}
