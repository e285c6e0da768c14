package projection

import "fmt"

// ConfigurationError reports a directive or schema mismatch: an included
// association the record type does not declare, or a record whose type the
// schema does not know. Directives are author-controlled, so this is always a
// programmer error, never a data error.
type ConfigurationError struct {
	RecordType  string
	Association string
}

func (e *ConfigurationError) Error() string {
	if e.Association == "" {
		return fmt.Sprintf("projection: undeclared record type %q", e.RecordType)
	}
	return fmt.Sprintf("projection: record type %q has no association %q", e.RecordType, e.Association)
}
