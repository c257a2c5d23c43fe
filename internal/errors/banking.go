package errors

var (
	ErrBankAccountNotFound = NotFound("BANK_ACCOUNT_NOT_FOUND", "bank account not found")
	ErrBankAccountMismatch = InvalidState("BANK_ACCOUNT_MISMATCH", "bank account does not belong to merchant")
)
