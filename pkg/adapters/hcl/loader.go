// Package hcl loads status maps from HCL definition files:
//
//	name        = "orders"
//	description = "Order lifecycle"
//
//	status "pending" {
//	  next = ["processing"]
//	}
//
//	status "rejected" {}
//
// Blocks keep their file order.
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/aretw0/statusmap/pkg/domain"
)

// fileRoot is the decoded shape of a definition file.
type fileRoot struct {
	Name        string         `hcl:"name,optional"`
	Description string         `hcl:"description,optional"`
	Statuses    []*statusBlock `hcl:"status,block"`
}

type statusBlock struct {
	Name string   `hcl:"name,label"`
	Next []string `hcl:"next,optional"`
}

// Loader implements ports.DefinitionLoader for HCL files.
type Loader struct {
	path string
}

// New creates a loader for the HCL file at path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the file.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Definition{}, err
	}

	src, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read definition file: %w", err)
	}

	def, err := Parse(src, l.path)
	if err != nil {
		return domain.Definition{}, err
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(l.path), filepath.Ext(l.path))
	}
	return def, nil
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (domain.Definition, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return domain.Definition{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return domain.Definition{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	if len(root.Statuses) == 0 {
		return domain.Definition{}, fmt.Errorf("%s: %w", filename, domain.ErrEmptyTransitions)
	}

	rules := make(domain.Transitions, 0, len(root.Statuses))
	seen := make(map[string]struct{})
	for _, s := range root.Statuses {
		if _, dup := seen[s.Name]; dup {
			return domain.Definition{}, fmt.Errorf("%s: status %q declared more than once", filename, s.Name)
		}
		seen[s.Name] = struct{}{}
		rules = append(rules, domain.Rule{From: s.Name, To: s.Next})
	}

	return domain.Definition{
		Name:        root.Name,
		Description: root.Description,
		Transitions: rules,
	}, nil
}
