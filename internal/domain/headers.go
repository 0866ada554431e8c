package domain

// Headers is the multi-valued header collection a handshake reads and writes.
// Names are matched case-insensitively. net/http.Header satisfies it.
type Headers interface {
	// Values returns every value stored for name, in encounter order
	Values(name string) []string
	// Set replaces any values stored for name with a single value
	Set(name, value string)
}

// LookupStatus tells how many times a header occurred
type LookupStatus int

const (
	// HeaderMissing indicates the header does not occur
	HeaderMissing LookupStatus = iota
	// HeaderFound indicates the header occurs exactly once
	HeaderFound
	// HeaderDuplicated indicates the header occurs more than once
	HeaderDuplicated
)

// String returns the string representation of the lookup status
func (s LookupStatus) String() string {
	switch s {
	case HeaderMissing:
		return "Missing"
	case HeaderFound:
		return "Found"
	case HeaderDuplicated:
		return "Duplicated"
	default:
		return "Unknown"
	}
}

// HeaderLookup is the result of a single-value header read.
// Value is only meaningful when Status is HeaderFound.
type HeaderLookup struct {
	Status LookupStatus
	Value  string
}

// Lookup reads name with single-value semantics
func Lookup(h Headers, name string) HeaderLookup {
	values := h.Values(name)
	switch len(values) {
	case 0:
		return HeaderLookup{Status: HeaderMissing}
	case 1:
		return HeaderLookup{Status: HeaderFound, Value: values[0]}
	default:
		return HeaderLookup{Status: HeaderDuplicated}
	}
}

// Require reads name with single-value semantics and turns a missing or
// duplicated header into an ErrInvalidHeader failure
func Require(h Headers, name string) (string, error) {
	res := Lookup(h, name)
	switch res.Status {
	case HeaderFound:
		return res.Value, nil
	case HeaderDuplicated:
		return "", NewDuplicatedHeaderError(name)
	default:
		return "", NewMissingHeaderError(name)
	}
}
