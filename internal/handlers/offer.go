package handlers

import (
	"mcacrm/internal/services/offer"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OfferHandler struct {
	offerService offer.Service
}

func NewOfferHandler(offerSvc offer.Service) *OfferHandler {
	return &OfferHandler{offerService: offerSvc}
}

func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input offer.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	o, err := h.offerService.Create(c.UserContext(), merchantID, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Offer created successfully", o)
}

// PreviewOffer prices terms without saving an offer.
func (h *OfferHandler) PreviewOffer(c *fiber.Ctx) error {
	var input offer.TermsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	quote, err := h.offerService.Preview(input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer preview", quote)
}

func (h *OfferHandler) ListOffers(c *fiber.Ctx) error {
	opts, p := listOptions(c)
	offers, total, err := h.offerService.List(c.UserContext(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return paged(c, p, total, offers)
}

func (h *OfferHandler) ListMerchantOffers(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	offers, err := h.offerService.ListByMerchant(c.UserContext(), merchantID, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offers retrieved", offers)
}

func (h *OfferHandler) GetSelectedOffer(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	o, err := h.offerService.GetSelected(c.UserContext(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Selected offer", o)
}

func (h *OfferHandler) GetOffer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	o, err := h.offerService.Get(c.UserContext(), id, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer retrieved", o)
}

func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input offer.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	o, err := h.offerService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer updated successfully", o)
}

func (h *OfferHandler) TransitionOffer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	o, err := h.offerService.Transition(c.UserContext(), id, input.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer status updated", o)
}

func (h *OfferHandler) DeleteOffer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.offerService.Delete(c.UserContext(), id, utils.Actor(c)); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OfferHandler) RestoreOffer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	o, err := h.offerService.Restore(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Offer restored", o)
}
