package projection

import (
	"context"
	"fmt"
)

// Cardinality describes how many related records an association resolves to.
type Cardinality int

const (
	// One means the association resolves to a single record or nil.
	One Cardinality = iota
	// Many means the association resolves to an ordered sequence of records.
	Many
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// Association declares a named link from one record type to another.
type Association struct {
	Name        string
	Target      string
	Cardinality Cardinality
}

// TypeDef declares a record type: its field names in output order and its
// associations to other types.
type TypeDef struct {
	Name         string
	Fields       []string
	Associations []Association
}

// Schema is the relation graph: the set of declared record types, their
// fields, and their associations. It is built once and immutable afterwards;
// the engine never infers structure at projection time.
type Schema struct {
	types map[string]*typeInfo
}

type typeInfo struct {
	def      TypeDef
	fieldSet map[string]struct{}
	assocs   map[string]Association
}

// NewSchema validates the given type definitions and assembles a schema.
// Duplicate type, field, or association names are errors, as are associations
// targeting an undeclared type. Forward references between types are fine.
func NewSchema(defs ...TypeDef) (*Schema, error) {
	s := &Schema{types: make(map[string]*typeInfo, len(defs))}

	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("record type with empty name")
		}
		if _, exists := s.types[def.Name]; exists {
			return nil, fmt.Errorf("duplicate record type %q", def.Name)
		}

		info := &typeInfo{
			def:      def,
			fieldSet: make(map[string]struct{}, len(def.Fields)),
			assocs:   make(map[string]Association, len(def.Associations)),
		}
		for _, f := range def.Fields {
			if _, dup := info.fieldSet[f]; dup {
				return nil, fmt.Errorf("record type %q: duplicate field %q", def.Name, f)
			}
			info.fieldSet[f] = struct{}{}
		}
		for _, a := range def.Associations {
			if _, dup := info.assocs[a.Name]; dup {
				return nil, fmt.Errorf("record type %q: duplicate association %q", def.Name, a.Name)
			}
			info.assocs[a.Name] = a
		}
		s.types[def.Name] = info
	}

	// Targets may reference types declared later, so check after collecting.
	for name, info := range s.types {
		for _, a := range info.def.Associations {
			if _, ok := s.types[a.Target]; !ok {
				return nil, fmt.Errorf("record type %q: association %q targets undeclared type %q", name, a.Name, a.Target)
			}
		}
	}

	return s, nil
}

// MustNewSchema is like NewSchema but panics on error. Intended for static
// schema declarations at process start.
func MustNewSchema(defs ...TypeDef) *Schema {
	s, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// TypeNames returns the declared type names. Order is unspecified.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	return names
}

func (s *Schema) lookup(name string) (*typeInfo, bool) {
	info, ok := s.types[name]
	return info, ok
}

// Record is the read-only view of one persisted entity that the engine
// projects. Implementations own record identity and association resolution;
// RelatedOne and RelatedMany may block on the underlying persistence layer.
type Record interface {
	// RecordType returns the schema type name this record belongs to.
	RecordType() string

	// FieldValue returns the value of one own field. The second return is
	// false when the record carries no value for the name.
	FieldValue(name string) (any, bool)

	// RelatedOne resolves a one-association. A nil Record with a nil error
	// means the association is absent.
	RelatedOne(ctx context.Context, name string) (Record, error)

	// RelatedMany resolves a many-association in storage order.
	RelatedMany(ctx context.Context, name string) ([]Record, error)
}
