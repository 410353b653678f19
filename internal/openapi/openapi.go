// Package openapi projects the blockkit schema catalog into an OpenAPI 3
// document, one component schema per definition and union.
package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/reoring/blockkit/internal/wire"
	js "github.com/reoring/blockkit/jsonschema"
	"github.com/reoring/blockkit/schema"
)

// Version is the OpenAPI version written into generated documents.
const Version = "3.0.3"

const componentPrefix = "#/components/schemas/"

// Options configures Build.
type Options struct {
	Title   string
	Version string // document version, not the OpenAPI version
}

// Build converts the schema catalog into an OpenAPI document and validates
// it. Every $ref is resolved, so the result can be walked without a loader.
func Build(ctx context.Context, opts Options) (*openapi3.T, error) {
	if opts.Title == "" {
		opts.Title = "Block Kit"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}
	src := schema.Document("")
	doc := &openapi3.T{
		OpenAPI:    Version,
		Info:       &openapi3.Info{Title: opts.Title, Version: opts.Version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	// allocate first so refs can point at their targets regardless of order
	comps := make(map[string]*openapi3.Schema, len(src.Defs))
	for name := range src.Defs {
		comps[name] = &openapi3.Schema{}
	}
	names := make([]string, 0, len(src.Defs))
	for name := range src.Defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := &converter{comps: comps}
		*comps[name] = *c.schema(src.Defs[name])
		if c.err != nil {
			return nil, fmt.Errorf("openapi: %s: %w", name, c.err)
		}
		doc.Components.Schemas[name] = &openapi3.SchemaRef{Value: comps[name]}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

type converter struct {
	comps map[string]*openapi3.Schema
	err   error
}

func (c *converter) ref(s *js.Schema) *openapi3.SchemaRef {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, "#/$defs/")
		target, ok := c.comps[name]
		if !ok && c.err == nil {
			c.err = fmt.Errorf("unresolved reference %s", s.Ref)
		}
		return &openapi3.SchemaRef{Ref: componentPrefix + name, Value: target}
	}
	return &openapi3.SchemaRef{Value: c.schema(s)}
}

func (c *converter) schema(s *js.Schema) *openapi3.Schema {
	out := &openapi3.Schema{
		Title:       s.Title,
		Format:      s.Format,
		Description: s.Description,
		Default:     s.Default,
	}
	if s.Type != "" {
		out.Type = &openapi3.Types{s.Type}
	}
	if len(s.Enum) > 0 {
		out.Enum = append([]any(nil), s.Enum...)
	} else if s.Const != nil {
		// OpenAPI 3.0 has no const keyword
		out.Enum = []any{s.Const}
	}
	if s.MinLength != nil {
		out.MinLength = uint64(*s.MinLength)
	}
	if s.MaxLength != nil {
		out.MaxLength = openapi3.Uint64Ptr(uint64(*s.MaxLength))
	}
	if s.Minimum != nil {
		out.Min = openapi3.Float64Ptr(float64(*s.Minimum))
	}
	if s.Maximum != nil {
		out.Max = openapi3.Float64Ptr(float64(*s.Maximum))
	}
	if s.MinItems != nil {
		out.MinItems = uint64(*s.MinItems)
	}
	if s.MaxItems != nil {
		out.MaxItems = openapi3.Uint64Ptr(uint64(*s.MaxItems))
	}
	if len(s.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = c.ref(p)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if b, ok := s.AdditionalProperties.(bool); ok {
		out.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(b)}
	}
	if s.Items != nil {
		out.Items = c.ref(s.Items)
	}
	for _, o := range s.OneOf {
		out.OneOf = append(out.OneOf, c.ref(o))
	}
	return out
}

// Marshal renders doc as indented JSON.
func Marshal(doc *openapi3.T) ([]byte, error) {
	b, err := wire.MarshalIndent(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode: %w", err)
	}
	return b, nil
}
