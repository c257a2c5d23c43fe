package errors

var (
	ErrOfferNotFound          = NotFound("OFFER_NOT_FOUND", "offer not found")
	ErrOfferNotSelected       = InvalidState("OFFER_NOT_SELECTED", "offer must be in selected status")
	ErrOfferLocked            = InvalidState("OFFER_LOCKED", "cannot delete an offer that is selected or funded")
	ErrInvalidOfferTransition = InvalidState("INVALID_OFFER_TRANSITION", "invalid offer status transition")
	ErrAmbiguousTerm          = InvalidState("AMBIGUOUS_TERM", "provide either payment_amount or number_of_periods, not both")
	ErrOfferAlreadySelected   = Conflict("OFFER_ALREADY_SELECTED", "merchant already has a selected offer")
	ErrDuplicateDealID        = Conflict("DUPLICATE_DEAL_ID", "an offer with this deal_id already exists")
	ErrOfferMerchantMismatch  = InvalidState("OFFER_MERCHANT_MISMATCH", "offer does not belong to merchant")
)
