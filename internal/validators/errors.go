package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName          = errors.New("must not be empty")
	ErrNameTooLong        = errors.New("must be at most 100 characters")
	ErrDescriptionTooLong = errors.New("must be at most 500 characters")
	ErrPriceTooLow        = errors.New("must be at least 0.01")
	ErrPriceTooHigh       = errors.New("must not exceed 1000000")
	ErrPriceNotFinite     = errors.New("must be a finite number")
	ErrInvalidID          = errors.New("must be a positive integer")

	ErrAmountRequired     = errors.New("is required")
	ErrAmountInvalid      = errors.New("must be a decimal number")
	ErrAmountNotPositive  = errors.New("must be greater than 0")
	ErrAmountTooLarge     = errors.New("must not exceed 999999999.99")
	ErrAmountPrecision    = errors.New("must have at most 2 decimal places")
	ErrCurrencyInvalid    = errors.New("must be an ISO 4217 currency code")
	ErrOccurredAtRequired = errors.New("is required")
	ErrOccurredAtInvalid  = errors.New("must be an ISO 8601 timestamp")

	ErrFileRequired        = errors.New("is required")
	ErrFileEmpty           = errors.New("must not be empty")
	ErrFileTooLarge        = errors.New("must be at most 5000000 bytes")
	ErrUnsupportedFileType = errors.New("must be a PNG or JPEG image")
)
