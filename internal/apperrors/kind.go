package apperrors

// Kind classifies an error for client-facing translation.
type Kind uint8

const (
	// KindInternal is any unclassified fault. It is the zero value so that
	// an unset Kind never exposes more than a generic failure.
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnauthenticated
	KindRateLimited
)

var kindNames = [...]string{
	KindInternal:        "internal",
	KindValidation:      "validation",
	KindNotFound:        "not_found",
	KindForbidden:       "forbidden",
	KindUnauthenticated: "unauthenticated",
	KindRateLimited:     "rate_limited",
}

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindInternal, KindValidation, KindNotFound, KindForbidden, KindUnauthenticated, KindRateLimited}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInternal]
}
