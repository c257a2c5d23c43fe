package errors

var (
	ErrPrincipalNotFound = NotFound("PRINCIPAL_NOT_FOUND", "principal not found")
	ErrOwnershipExceeded = Conflict("OWNERSHIP_EXCEEDED", "total ownership would exceed 100%")
	ErrDuplicateSSN      = Conflict("DUPLICATE_SSN", "a principal with this SSN already exists for this merchant")
)
