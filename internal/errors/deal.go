package errors

var (
	ErrDealNotFound          = NotFound("DEAL_NOT_FOUND", "deal not found")
	ErrDuplicateDealNumber   = Conflict("DUPLICATE_DEAL_NUMBER", "deal number already assigned")
	ErrInvalidDealTransition = InvalidState("INVALID_DEAL_TRANSITION", "invalid deal status transition")
	ErrDealAlreadyRenewed    = InvalidState("DEAL_ALREADY_RENEWED", "deal has already been renewed")
)
