package handlers

import (
	"mcacrm/internal/services/merchant"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MerchantHandler struct {
	merchantService merchant.Service
}

func NewMerchantHandler(merchantSvc merchant.Service) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantSvc}
}

func (h *MerchantHandler) CreateMerchant(c *fiber.Ctx) error {
	var input merchant.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	m, err := h.merchantService.Create(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Merchant created successfully", m)
}

func (h *MerchantHandler) ListMerchants(c *fiber.Ctx) error {
	opts, p := listOptions(c)
	merchants, total, err := h.merchantService.List(c.UserContext(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return paged(c, p, total, merchants)
}

func (h *MerchantHandler) GetMerchant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	m, err := h.merchantService.Get(c.UserContext(), id, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant retrieved", m)
}

func (h *MerchantHandler) UpdateMerchant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input merchant.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.merchantService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant updated successfully", m)
}

func (h *MerchantHandler) DeleteMerchant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.merchantService.Delete(c.UserContext(), id, utils.Actor(c)); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MerchantHandler) RestoreMerchant(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	m, err := h.merchantService.Restore(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant restored", m)
}

func (h *MerchantHandler) GetMerchantStats(c *fiber.Ctx) error {
	stats, err := h.merchantService.Stats(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Merchant statistics", stats)
}
