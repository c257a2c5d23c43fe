package renewal

import (
	"context"
	"errors"

	apperrors "mcacrm/internal/errors"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"

	"github.com/shopspring/decimal"
)

func (s *service) Chain(ctx context.Context, dealID uint) (*Chain, error) {
	store := s.store.WithContext(ctx)
	d, err := store.Deals.GetByID(dealID)
	if err != nil {
		return nil, err
	}

	chain := &Chain{
		DealID:      d.ID,
		DealNumber:  d.DealNumber,
		IsRenewal:   d.IsRenewal,
		RenewedFrom: []Link{},
	}

	into, err := renewedInto(store, d.ID)
	if err != nil {
		return nil, err
	}
	chain.RenewedInto = into
	chain.WasRenewed = into != nil

	if d.IsRenewal {
		if chain.RenewedFrom, err = renewedFrom(store, d.ID); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (s *service) Summary(ctx context.Context, dealID uint) (*Summary, error) {
	store := s.store.WithContext(ctx)
	d, err := store.Deals.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if !d.IsRenewal {
		return nil, apperrors.ErrNotRenewalDeal.WithMessage("deal %s is not a renewal deal", d.DealNumber)
	}

	from, err := renewedFrom(store, d.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(from))
	for _, l := range from {
		ids = append(ids, l.DealID)
	}

	net := decimal.Zero
	if d.NetCashToMerchant != nil {
		net = *d.NetCashToMerchant
	}
	return &Summary{
		DealID:               d.ID,
		DealNumber:           d.DealNumber,
		IsRenewal:            d.IsRenewal,
		FundedAmount:         d.FundedAmount,
		TotalTransferBalance: d.TotalTransferBalance,
		NetCashToMerchant:    net,
		OldDealsCount:        len(ids),
		OldDealIDs:           ids,
		CreatedAt:            d.CreatedAt,
	}, nil
}

func (s *service) ListInfos(ctx context.Context, dealID uint) ([]models.RenewalInfo, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Deals.GetByID(dealID); err != nil {
		return nil, err
	}
	return store.Renewals.ListInfosByDeal(dealID)
}

func (s *service) ListRelationships(ctx context.Context, dealID uint) ([]models.DealRenewalRelationship, error) {
	store := s.store.WithContext(ctx)
	if _, err := store.Deals.GetByID(dealID); err != nil {
		return nil, err
	}
	return store.Renewals.ListRelationships(dealID)
}

// renewedInto finds the deal that renewed dealID, or nil.
func renewedInto(store *repositories.Store, dealID uint) (*Link, error) {
	rel, err := store.Renewals.GetActiveOutgoing(dealID)
	if errors.Is(err, apperrors.ErrRenewalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	next, err := store.Deals.GetByID(rel.NewDealID)
	if err != nil {
		return nil, err
	}
	funded := next.FundingDate
	return &Link{DealID: next.ID, DealNumber: next.DealNumber, RenewalDate: &funded}, nil
}

// renewedFrom lists the old deals still actively consumed by a renewal.
func renewedFrom(store *repositories.Store, dealID uint) ([]Link, error) {
	rels, err := store.Renewals.ListActiveIncoming(dealID)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(rels))
	for _, rel := range rels {
		old, err := store.Deals.GetByID(rel.OldDealID)
		if err != nil {
			return nil, err
		}
		info, err := store.Renewals.GetInfo(rel.RenewalInfoID)
		if err != nil {
			return nil, err
		}
		balance := info.TransferBalance
		links = append(links, Link{
			DealID:          old.ID,
			DealNumber:      old.DealNumber,
			TransferBalance: &balance,
			PayoffDate:      info.PayoffDate,
		})
	}
	return links, nil
}
