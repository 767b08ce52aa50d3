// Package hcl loads network descriptions from HCL files and translates
// them into the format-agnostic config model consumed by the net builder.
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges the network
// blocks found. Exactly one network must be described across all files;
// layer order follows file order, then block order within a file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.NetDescription, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered description files.", "count", len(files))

	parser := hclparse.NewParser()
	var desc *config.NetDescription
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}
		desc, err = l.mergeFile(ctx, file, hclFile.Body, desc)
		if err != nil {
			return nil, err
		}
	}

	if desc == nil {
		return nil, fmt.Errorf("no network block found under %v", paths)
	}
	logger.Debug("Description loaded.", "network", desc.Name, "layers", len(desc.Layers))
	return desc, nil
}

// LoadSource parses a single in-memory description, for tests and tools.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.NetDescription, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	desc, err := l.mergeFile(ctx, filename, hclFile.Body, nil)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, fmt.Errorf("%s: no network block found", filename)
	}
	return desc, nil
}

func (l *Loader) mergeFile(ctx context.Context, file string, body hcl.Body, desc *config.NetDescription) (*config.NetDescription, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
	}

	for _, nb := range root.Networks {
		if desc != nil && desc.Name != nb.Name {
			return nil, fmt.Errorf("%s: network %q conflicts with already loaded network %q", file, nb.Name, desc.Name)
		}
		if desc == nil {
			desc = &config.NetDescription{Name: nb.Name}
		}
		if nb.State != nil {
			if desc.State != nil {
				return nil, fmt.Errorf("%s: network %q declares a second state block", file, nb.Name)
			}
			desc.State = &config.NetState{
				Phase:  nb.State.Phase,
				Stages: nb.State.Stages,
				Level:  nb.State.Level,
			}
		}
		for _, lb := range nb.Layers {
			ld, err := translateLayer(lb)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			desc.Layers = append(desc.Layers, ld)
		}
	}
	return desc, nil
}

// translateLayer converts an HCL layer block into the agnostic model,
// evaluating the leftover attributes into the layer's option values.
func translateLayer(lb *layerBlock) (*config.LayerDesc, error) {
	ld := &config.LayerDesc{
		Type:       lb.Type,
		Name:       lb.Name,
		Bottoms:    lb.Bottoms,
		Tops:       lb.Tops,
		ParamNames: lb.ParamNames,
	}
	for _, rb := range lb.Include {
		ld.Include = append(ld.Include, translateRule(rb))
	}
	for _, rb := range lb.Exclude {
		ld.Exclude = append(ld.Exclude, translateRule(rb))
	}

	opts, err := evalBodyAttributes(lb.Options)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", lb.Name, err)
	}
	ld.Options = opts
	return ld, nil
}

func translateRule(rb *ruleBlock) *config.Rule {
	return &config.Rule{
		Phase:     rb.Phase,
		MinLevel:  rb.MinLevel,
		MaxLevel:  rb.MaxLevel,
		Stages:    rb.Stages,
		NotStages: rb.NotStages,
	}
}

// evalBodyAttributes evaluates every attribute on a remain body. Layer
// options are static values; expressions referencing variables are a
// description error.
func evalBodyAttributes(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid options: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	opts := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("option %q: %w", name, diags)
		}
		opts[name] = val
	}
	return opts, nil
}

// findHCLFiles walks the given paths and returns every .hcl file once.
func findHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := seen[p]; !ok {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}
