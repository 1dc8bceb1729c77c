package identity

// Well-known principal types. Principal types are open-ended; these
// cover the common cases.
const (
	TypeLogin      = "login"
	TypeEmail      = "email"
	TypeEmployeeID = "employee-id"
	TypeHost       = "host"
)

// A Principal is a typed identifier for a subject. One identity may
// carry several principals of different (or the same) type, e.g. a
// login name plus an email plus an employee ID. Principals are values
// and immutable once created.
type Principal struct {
	principalType string
	value         string
}

// NewPrincipal creates a principal of the given type.
func NewPrincipal(principalType, value string) Principal {
	return Principal{principalType: principalType, value: value}
}

// Type returns the principal's type tag.
func (p Principal) Type() string { return p.principalType }

// Value returns the identifier itself.
func (p Principal) Value() string { return p.value }

// IsZero reports whether p is the zero principal.
func (p Principal) IsZero() bool {
	return p.principalType == "" && p.value == ""
}

func (p Principal) String() string {
	return p.principalType + ":" + p.value
}
