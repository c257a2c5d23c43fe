package renewal

import (
	"context"
	"time"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/logger"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/services/deal"
	"mcacrm/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	store   *repositories.Store
	deals   SummaryInvalidator
	metrics metrics.Collector
	log     *zap.Logger
}

// NewService creates a new renewal service.
func NewService(store *repositories.Store, deals SummaryInvalidator, m metrics.Collector) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{
		store:   store,
		deals:   deals,
		metrics: metrics.OrNoop(m),
		log:     logger.Named("renewal"),
	}
}

func (s *service) Create(ctx context.Context, in CreateInput, actor string) (_ *models.Deal, err error) {
	defer metrics.Observe(s.metrics, "renewal.create", time.Now(), &err)

	if len(in.OldDeals) == 0 {
		return nil, apperrors.ErrNoDealsToRenew
	}
	seen := make(map[uint]bool, len(in.OldDeals))
	for _, od := range in.OldDeals {
		if seen[od.OldDealID] {
			return nil, apperrors.ErrDuplicateOldDeal.WithMessage("old deal %d listed more than once", od.OldDealID)
		}
		seen[od.OldDealID] = true
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	total := in.TotalTransfer()
	draft := deal.Draft{
		MerchantID:       in.MerchantID,
		OfferID:          in.OfferID,
		BankAccountID:    in.BankAccountID,
		FundingDate:      in.FundingDate.Time,
		FirstPaymentDate: in.FirstPaymentDate.TimePtr(),
		TransferBalance:  total,
		IsRenewal:        true,
		Notes:            in.Notes,
		CreatedBy:        actor,
	}

	var renewal *models.Deal
	err = deal.WithNumberRetry(ctx, s.store, func(tx *repositories.Store) error {
		var err error
		if renewal, err = deal.Open(tx, draft); err != nil {
			return err
		}
		for _, od := range in.OldDeals {
			if err := s.payOff(tx, renewal, od); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.deals != nil {
		s.deals.InvalidateSummary(ctx)
	}
	f, _ := total.Float64()
	s.metrics.RecordAmount("transferred", f)
	s.log.Info("renewal deal created",
		zap.Uint("deal_id", renewal.ID),
		zap.String("deal_number", renewal.DealNumber),
		zap.Int("old_deals", len(in.OldDeals)),
		zap.String("total_transfer_balance", total.StringFixed(2)))
	return renewal, nil
}

// payOff closes one old deal into the renewal and records the edge.
func (s *service) payOff(tx *repositories.Store, renewal *models.Deal, od OldDeal) error {
	old, err := tx.Deals.LockByID(od.OldDealID)
	if err != nil {
		return err
	}
	if old.MerchantID != renewal.MerchantID {
		return apperrors.ErrOldDealMerchantMismatch.WithMessage("deal %s does not belong to merchant %d", old.DealNumber, renewal.MerchantID)
	}
	if old.Status == models.DealStatusRenewed {
		return apperrors.ErrDealAlreadyRenewed.WithMessage("deal %s has already been renewed", old.DealNumber)
	}

	info := &models.RenewalInfo{
		OldDealID:       old.ID,
		TransferBalance: od.TransferBalance.Round(2),
		PayoffDate:      od.PayoffDate.TimePtr(),
		Notes:           od.Notes,
	}
	if err := tx.Renewals.CreateInfo(info); err != nil {
		return err
	}
	if err := tx.Renewals.CreateJunction(&models.DealRenewalJunction{DealID: renewal.ID, RenewalInfoID: info.ID}); err != nil {
		return err
	}
	rel := &models.DealRenewalRelationship{
		OldDealID:     old.ID,
		NewDealID:     renewal.ID,
		RenewalInfoID: info.ID,
		Status:        models.RenewalStatusActive,
	}
	if err := tx.Renewals.CreateRelationship(rel); err != nil {
		return err
	}

	old.Status = models.DealStatusRenewed
	return tx.Deals.Update(old)
}

func (s *service) Reverse(ctx context.Context, oldDealID, newDealID uint) (_ *models.DealRenewalRelationship, err error) {
	defer metrics.Observe(s.metrics, "renewal.reverse", time.Now(), &err)

	var rel *models.DealRenewalRelationship
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if rel, err = tx.Renewals.GetActiveRelationship(oldDealID, newDealID); err != nil {
			return err
		}
		rel.Status = models.RenewalStatusReversed
		if err := tx.Renewals.UpdateRelationship(rel); err != nil {
			return err
		}

		old, err := tx.Deals.LockByID(oldDealID)
		if err != nil {
			return err
		}
		if old.Status != models.DealStatusRenewed {
			return nil
		}
		old.Status = models.DealStatusActive
		return tx.Deals.Update(old)
	})
	if err != nil {
		return nil, err
	}

	if s.deals != nil {
		s.deals.InvalidateSummary(ctx)
	}
	s.log.Info("renewal reversed", zap.Uint("old_deal_id", oldDealID), zap.Uint("new_deal_id", newDealID))
	return rel, nil
}

func (s *service) UpdateInfo(ctx context.Context, infoID uint, in InfoUpdateInput) (_ *models.RenewalInfo, err error) {
	defer metrics.Observe(s.metrics, "renewal.update_info", time.Now(), &err)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var info *models.RenewalInfo
	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if info, err = tx.Renewals.GetInfo(infoID); err != nil {
			return err
		}
		if in.FinalPaymentAmount != nil {
			amount := in.FinalPaymentAmount.Round(2)
			info.FinalPaymentAmount = &amount
		}
		if in.PayoffDate != nil {
			info.PayoffDate = in.PayoffDate.TimePtr()
		}
		if in.Notes != nil {
			info.Notes = *in.Notes
		}
		balanceChanged := in.TransferBalance != nil && !in.TransferBalance.Equal(info.TransferBalance)
		if in.TransferBalance != nil {
			info.TransferBalance = in.TransferBalance.Round(2)
		}
		if err := tx.Renewals.UpdateInfo(info); err != nil {
			return err
		}
		if !balanceChanged {
			return nil
		}

		junction, err := tx.Renewals.GetJunctionByInfo(info.ID)
		if err != nil {
			return err
		}
		return retotal(tx, junction.DealID)
	})
	if err != nil {
		return nil, err
	}
	if s.deals != nil {
		s.deals.InvalidateSummary(ctx)
	}
	return info, nil
}

// retotal rebuilds a renewal deal's transfer total and net cash from its
// renewal infos.
func retotal(tx *repositories.Store, dealID uint) error {
	d, err := tx.Deals.LockByID(dealID)
	if err != nil {
		return err
	}
	infos, err := tx.Renewals.ListInfosByDeal(dealID)
	if err != nil {
		return err
	}
	o, err := tx.Offers.GetByID(d.OfferID, true)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, info := range infos {
		total = total.Add(info.TransferBalance)
	}
	net := d.FundedAmount.Sub(o.UpfrontFees).Sub(total).Round(2)
	d.TotalTransferBalance = total.Round(2)
	d.NetCashToMerchant = &net
	return tx.Deals.Update(d)
}
