package projection

import (
	"context"
	"fmt"
)

// Engine evaluates directives against records using a fixed schema. It is
// stateless beyond the schema and safe for concurrent use as long as the
// underlying records are not mutated during projection.
type Engine struct {
	schema *Schema
}

// New creates an engine bound to the given schema.
func New(schema *Schema) *Engine {
	return &Engine{schema: schema}
}

// Project dispatches on the input shape: a single Record projects to an
// *Object (or nil for a nil record), a []Record projects to a List.
func (e *Engine) Project(ctx context.Context, input any, directive *Directive) (any, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case Record:
		return e.ProjectRecord(ctx, v, directive)
	case []Record:
		return e.ProjectRecords(ctx, v, directive)
	default:
		return nil, fmt.Errorf("projection: unsupported input type %T", input)
	}
}

// ProjectRecords projects each record in order. The result has the same
// length and order as the input; an empty input yields an empty, non-nil
// List. Elements are never filtered or reordered.
func (e *Engine) ProjectRecords(ctx context.Context, records []Record, directive *Directive) (List, error) {
	out := make(List, 0, len(records))
	for _, rec := range records {
		obj, err := e.ProjectRecord(ctx, rec, directive)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, obj)
	}
	return out, nil
}

// ProjectRecord applies a directive to a single record: own fields first in
// declared order (restricted to directive.Only when non-empty, with unknown
// names silently dropped), then each included association in directive
// order. A nil record projects to nil. The input is never mutated.
func (e *Engine) ProjectRecord(ctx context.Context, rec Record, directive *Directive) (*Object, error) {
	if rec == nil {
		return nil, nil
	}

	info, ok := e.schema.lookup(rec.RecordType())
	if !ok {
		return nil, &ConfigurationError{RecordType: rec.RecordType()}
	}

	if directive == nil {
		directive = &Directive{}
	}

	out := NewObject()

	keep := info.def.Fields
	if len(directive.Only) > 0 {
		wanted := make(map[string]struct{}, len(directive.Only))
		for _, name := range directive.Only {
			wanted[name] = struct{}{}
		}
		selected := make([]string, 0, len(directive.Only))
		for _, name := range info.def.Fields {
			if _, ok := wanted[name]; ok {
				selected = append(selected, name)
			}
		}
		keep = selected
	}
	for _, name := range keep {
		value, ok := rec.FieldValue(name)
		if !ok {
			value = nil
		}
		out.Set(name, value)
	}

	for _, inc := range directive.Include {
		assoc, ok := info.assocs[inc.Name]
		if !ok {
			return nil, &ConfigurationError{RecordType: rec.RecordType(), Association: inc.Name}
		}

		switch assoc.Cardinality {
		case Many:
			related, err := rec.RelatedMany(ctx, inc.Name)
			if err != nil {
				return nil, fmt.Errorf("projection: resolving %s.%s: %w", rec.RecordType(), inc.Name, err)
			}
			list, err := e.ProjectRecords(ctx, related, inc.Directive)
			if err != nil {
				return nil, err
			}
			out.Set(inc.Name, list)
		case One:
			related, err := rec.RelatedOne(ctx, inc.Name)
			if err != nil {
				return nil, fmt.Errorf("projection: resolving %s.%s: %w", rec.RecordType(), inc.Name, err)
			}
			if related == nil {
				out.Set(inc.Name, nil)
				continue
			}
			obj, err := e.ProjectRecord(ctx, related, inc.Directive)
			if err != nil {
				return nil, err
			}
			out.Set(inc.Name, obj)
		default:
			return nil, fmt.Errorf("projection: %s.%s has invalid cardinality %v", rec.RecordType(), inc.Name, assoc.Cardinality)
		}
	}

	return out, nil
}
