package errors

var (
	ErrPaymentNotFound = NotFound("PAYMENT_NOT_FOUND", "payment not found")
	ErrPaymentDeleted  = InvalidState("PAYMENT_DELETED", "payment is deleted")
)
