package projection

// Directive selects which own fields and which associations of a record
// appear in projected output. A nil or zero directive keeps every declared
// field and includes no associations.
type Directive struct {
	// Only lists the field names to keep. Nil or empty keeps all declared
	// fields. Names not declared on the record type are silently dropped.
	Only []string

	// Include lists associations to resolve, in output order, each with the
	// directive to apply to the related record(s).
	Include []Include
}

// Include pairs an association name with the directive applied to its
// related records. A nil Directive projects all fields, no associations.
type Include struct {
	Name      string
	Directive *Directive
}

// Only builds a directive keeping exactly the named fields. With no
// arguments it is equivalent to All.
func Only(fields ...string) *Directive {
	return &Directive{Only: fields}
}

// All builds a directive keeping every declared field.
func All() *Directive {
	return &Directive{}
}

// With appends an included association and returns the directive for
// chaining. It mutates the receiver; directives are built once at startup,
// never concurrently.
func (d *Directive) With(name string, nested *Directive) *Directive {
	d.Include = append(d.Include, Include{Name: name, Directive: nested})
	return d
}
