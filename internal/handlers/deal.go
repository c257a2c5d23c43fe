package handlers

import (
	"mcacrm/internal/services/deal"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DealHandler struct {
	dealService deal.Service
}

func NewDealHandler(dealSvc deal.Service) *DealHandler {
	return &DealHandler{dealService: dealSvc}
}

func (h *DealHandler) CreateDeal(c *fiber.Ctx) error {
	var input deal.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	d, err := h.dealService.Create(c.UserContext(), input, utils.Actor(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Deal created successfully", d)
}

func (h *DealHandler) ListDeals(c *fiber.Ctx) error {
	opts, p := listOptions(c)
	deals, total, err := h.dealService.List(c.UserContext(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return paged(c, p, total, deals)
}

func (h *DealHandler) ListActiveDeals(c *fiber.Ctx) error {
	deals, err := h.dealService.ListActive(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Active deals", deals)
}

func (h *DealHandler) ListMerchantDeals(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deals, err := h.dealService.ListByMerchant(c.UserContext(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deals retrieved", deals)
}

func (h *DealHandler) ListMerchantRenewalDeals(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deals, err := h.dealService.ListRenewalsByMerchant(c.UserContext(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal deals retrieved", deals)
}

func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	d, err := h.dealService.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal retrieved", d)
}

func (h *DealHandler) GetDealByNumber(c *fiber.Ctx) error {
	d, err := h.dealService.GetByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal retrieved", d)
}

func (h *DealHandler) UpdateDeal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input deal.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	d, err := h.dealService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal updated successfully", d)
}

// CancelDeal is DELETE on a deal. The row is kept with status cancelled.
func (h *DealHandler) CancelDeal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	d, err := h.dealService.Cancel(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal cancelled", d)
}

func (h *DealHandler) RecomputeBalance(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	d, err := h.dealService.RecomputeBalance(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal balance recomputed", d)
}

func (h *DealHandler) RecomputeAllBalances(c *fiber.Ctx) error {
	n, err := h.dealService.RecomputeAll(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Deal balances recomputed", fiber.Map{"deals": n})
}

func (h *DealHandler) GetPortfolioSummary(c *fiber.Ctx) error {
	summary, err := h.dealService.Summary(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Portfolio summary", summary)
}
