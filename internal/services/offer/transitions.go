package offer

import (
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
)

// rank orders the forward path. Side exits have no rank.
var rank = map[string]int{
	models.OfferStatusDraft:    0,
	models.OfferStatusSent:     1,
	models.OfferStatusSelected: 2,
	models.OfferStatusFunded:   3,
}

// CheckTransition reports whether an offer may move from one status to
// another. Re-applying the current status is always allowed.
func CheckTransition(from, to string) error {
	if from == to {
		return nil
	}
	switch to {
	case models.OfferStatusDeclined, models.OfferStatusWithdrawn:
		if from == models.OfferStatusDraft || from == models.OfferStatusSent {
			return nil
		}
	case models.OfferStatusFunded:
		if from == models.OfferStatusSelected {
			return nil
		}
	case models.OfferStatusDraft, models.OfferStatusSent, models.OfferStatusSelected:
		fromRank, onPath := rank[from]
		if onPath && rank[to] > fromRank {
			return nil
		}
	default:
		return apperrors.Validation("invalid status",
			apperrors.FieldError{Field: "status", Message: "must be one of: draft, sent, selected, funded, declined, withdrawn"})
	}
	return apperrors.ErrInvalidOfferTransition.WithMessage("cannot move offer from %s to %s", from, to)
}

// stamp sets the timestamp belonging to status if it is still empty.
func stamp(o *models.Offer, status string, at time.Time) {
	switch status {
	case models.OfferStatusSent:
		if o.SentAt == nil {
			o.SentAt = &at
		}
	case models.OfferStatusSelected:
		if o.SelectedAt == nil {
			o.SelectedAt = &at
		}
	case models.OfferStatusFunded:
		if o.FundedAt == nil {
			o.FundedAt = &at
		}
	}
}

// moveTo applies a checked transition. Selecting takes the merchant lock
// and rejects a second selected offer for the merchant.
func moveTo(tx *repositories.Store, o *models.Offer, status string, at time.Time) error {
	if err := CheckTransition(o.Status, status); err != nil {
		return err
	}
	if status == models.OfferStatusSelected && o.Status != models.OfferStatusSelected {
		if _, err := tx.Merchants.LockByID(o.MerchantID); err != nil {
			return err
		}
		other, err := tx.Offers.GetSelectedByMerchant(o.MerchantID, o.ID)
		switch {
		case err == nil:
			return apperrors.ErrOfferAlreadySelected.WithMessage(
				"merchant already has selected offer %d", other.ID)
		case !apperrors.IsKind(err, apperrors.KindNotFound):
			return err
		}
	}
	o.Status = status
	stamp(o, status, at)
	return nil
}

// MarkFunded moves a selected offer to funded inside tx. Deal creation and
// renewals call it as part of their own transaction.
func MarkFunded(tx *repositories.Store, offerID uint, at time.Time) (*models.Offer, error) {
	o, err := tx.Offers.LockByID(offerID)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OfferStatusSelected && o.Status != models.OfferStatusFunded {
		return nil, apperrors.ErrOfferNotSelected
	}
	if err := moveTo(tx, o, models.OfferStatusFunded, at); err != nil {
		return nil, err
	}
	if err := tx.Offers.Update(o); err != nil {
		return nil, err
	}
	return o, nil
}
