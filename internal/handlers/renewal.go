package handlers

import (
	"mcacrm/internal/services/renewal"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RenewalHandler struct {
	renewalService renewal.Service
}

func NewRenewalHandler(renewalSvc renewal.Service) *RenewalHandler {
	return &RenewalHandler{renewalService: renewalSvc}
}

func (h *RenewalHandler) CreateRenewal(c *fiber.Ctx) error {
	var input renewal.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	d, err := h.renewalService.Create(c.UserContext(), input, utils.Actor(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Renewal deal created successfully", d)
}

func (h *RenewalHandler) ReverseRenewal(c *fiber.Ctx) error {
	var input struct {
		OldDealID uint `json:"old_deal_id"`
		NewDealID uint `json:"new_deal_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rel, err := h.renewalService.Reverse(c.UserContext(), input.OldDealID, input.NewDealID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal reversed", rel)
}

func (h *RenewalHandler) GetRenewalChain(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	chain, err := h.renewalService.Chain(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal chain", chain)
}

func (h *RenewalHandler) GetRenewalSummary(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	summary, err := h.renewalService.Summary(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal summary", summary)
}

func (h *RenewalHandler) ListRenewalInfos(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	infos, err := h.renewalService.ListInfos(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal infos", infos)
}

func (h *RenewalHandler) ListRenewalRelationships(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	rels, err := h.renewalService.ListRelationships(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal relationships", rels)
}

func (h *RenewalHandler) UpdateRenewalInfo(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input renewal.InfoUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	info, err := h.renewalService.UpdateInfo(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Renewal info updated", info)
}
