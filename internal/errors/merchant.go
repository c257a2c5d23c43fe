package errors

var (
	ErrMerchantNotFound = NotFound("MERCHANT_NOT_FOUND", "merchant not found")
	ErrDuplicateFEIN    = Conflict("DUPLICATE_FEIN", "a merchant with this FEIN already exists")
	ErrMerchantDeleted  = InvalidState("MERCHANT_DELETED", "merchant is deleted")
)
