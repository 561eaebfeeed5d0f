package problem

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads a problem file, choosing the decoder by extension.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	var p *Problem
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	case ".cue":
		p, err = ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported problem file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseYAML decodes and validates a YAML document. Unknown fields are
// rejected.
func ParseYAML(data []byte) (*Problem, error) {
	var p Problem
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&p)
}

// ParseCUE unifies a CUE document with the #Problem schema, then decodes
// and validates it. filename is used in error positions only.
func ParseCUE(data []byte, filename string) (*Problem, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CUE: %s", errors.Details(err, nil))
	}

	v := schema.LookupPath(cue.ParsePath("#Problem")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("schema violation: %s", errors.Details(err, nil))
	}

	var p Problem
	if err := v.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return finish(&p)
}

func finish(p *Problem) (*Problem, error) {
	p.normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	return p, nil
}
