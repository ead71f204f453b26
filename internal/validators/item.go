package validators

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-tracker/internal/apperrors"
	"github.com/MKhiriev/go-task-tracker/models"
)

// Field name constants used to specify which fields should be validated.
// They are also the field names reported in validation problems.
const (
	// FieldName targets the item name.
	FieldName = "name"

	// FieldDescription targets the optional free-text description.
	FieldDescription = "description"

	// FieldPrice targets the optional price.
	FieldPrice = "price"

	// FieldID targets the item identifier taken from the request path.
	FieldID = "id"

	// FieldBody is reported when the request body cannot be decoded.
	FieldBody = "body"
)

// Business limits for items.
const (
	MinNameLength        = 1
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MinPrice             = 0.01
	MaxPrice             = 1_000_000.0
)

// itemFields is the default validation order; violations are reported in
// this order.
var itemFields = []string{FieldName, FieldDescription, FieldPrice}

// ItemValidator implements the Validator interface for item requests.
//
// Passing a *models.ItemRequest canonicalizes it in place before the
// checks run: the name is trimmed with inner whitespace collapsed, the
// description is trimmed (an empty one becomes nil) and the price is
// rounded to two decimals. A value models.ItemRequest is checked on a copy.
//
// All violations are collected into a single validation error.
type ItemValidator struct {
}

// NewItemValidator constructs a new ItemValidator and returns it as the
// Validator interface.
func NewItemValidator() Validator {
	return &ItemValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj is not an item request, ErrUnknownField
// for an unknown field name, or an [apperrors.Error] of kind validation
// listing every violation.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ItemRequest:
		return v.validateItemRequest(ctx, &value, fields...)
	case *models.ItemRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateItemRequest(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateItemRequest(_ context.Context, req *models.ItemRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = itemFields
	}

	var violations []apperrors.FieldError
	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			req.Name, err = CanonicalizeName(req.Name)
		case FieldDescription:
			req.Description, err = CanonicalizeDescription(req.Description)
		case FieldPrice:
			req.Price, err = CanonicalizePrice(req.Price)
		default:
			return ErrUnknownField
		}
		if err != nil {
			violations = append(violations, apperrors.FieldError{Field: f, Message: err.Error()})
		}
	}

	if len(violations) > 0 {
		return apperrors.Validation(violations...)
	}
	return nil
}

// CanonicalizeName trims name and collapses runs of whitespace into a
// single space, then checks its length in characters.
func CanonicalizeName(name string) (string, error) {
	canonical := strings.Join(strings.Fields(name), " ")

	n := utf8.RuneCountInString(canonical)
	if n < MinNameLength {
		return canonical, ErrEmptyName
	}
	if n > MaxNameLength {
		return canonical, ErrNameTooLong
	}
	return canonical, nil
}

// CanonicalizeDescription trims description. A blank description becomes
// nil.
func CanonicalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}

	canonical := strings.TrimSpace(*description)
	if canonical == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(canonical) > MaxDescriptionLength {
		return description, ErrDescriptionTooLong
	}
	return &canonical, nil
}

// CanonicalizePrice checks the bounds of price and rounds it to two
// decimals. The bounds are checked before rounding.
func CanonicalizePrice(price *float64) (*float64, error) {
	if price == nil {
		return nil, nil
	}

	p := *price
	switch {
	case math.IsNaN(p) || math.IsInf(p, 0):
		return price, ErrPriceNotFinite
	case p < MinPrice:
		return price, ErrPriceTooLow
	case p > MaxPrice:
		return price, ErrPriceTooHigh
	}

	rounded := math.Round(p*100) / 100
	return &rounded, nil
}

// ParseItemID parses an item identifier taken from a request path.
func ParseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(apperrors.FieldError{Field: FieldID, Message: ErrInvalidID.Error()})
	}
	return id, nil
}
