package correlation

import "github.com/google/uuid"

const (
	// Header is the HTTP header used to receive and echo correlation IDs.
	Header = "X-Correlation-ID"

	// canonicalLength is the length of the 8-4-4-4-12 textual UUID form.
	canonicalLength = 36
)

// NewID generates a random (version 4) UUID in canonical textual form.
func NewID() string {
	return uuid.NewString()
}

// IsValid reports whether id is a UUID in canonical 8-4-4-4-12 form.
// URN, braced and hyphen-less encodings accepted by uuid.Parse are rejected.
func IsValid(id string) bool {
	if len(id) != canonicalLength {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Resolve returns the ID to use for a request given the inbound value.
// A valid inbound ID is adopted verbatim and adopted is true; otherwise a
// new ID is generated.
func Resolve(inbound string) (id string, adopted bool) {
	if IsValid(inbound) {
		return inbound, true
	}
	return NewID(), false
}
