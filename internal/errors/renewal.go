package errors

var (
	ErrRenewalNotFound         = NotFound("RENEWAL_NOT_FOUND", "no active renewal relationship found")
	ErrRenewalInfoNotFound     = NotFound("RENEWAL_INFO_NOT_FOUND", "renewal info not found")
	ErrNotRenewalDeal          = NotFound("NOT_A_RENEWAL_DEAL", "deal is not a renewal deal")
	ErrNoDealsToRenew          = New(KindValidation, "NO_OLD_DEALS", "at least one old deal is required")
	ErrDuplicateOldDeal        = New(KindValidation, "DUPLICATE_OLD_DEAL", "old deal listed more than once")
	ErrOldDealMerchantMismatch = InvalidState("OLD_DEAL_MERCHANT_MISMATCH", "old deal does not belong to merchant")
)
