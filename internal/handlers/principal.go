package handlers

import (
	"mcacrm/internal/services/principal"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PrincipalHandler struct {
	principalService principal.Service
}

func NewPrincipalHandler(principalSvc principal.Service) *PrincipalHandler {
	return &PrincipalHandler{principalService: principalSvc}
}

func (h *PrincipalHandler) CreatePrincipal(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input principal.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	p, err := h.principalService.Create(c.UserContext(), merchantID, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Principal created successfully", p)
}

func (h *PrincipalHandler) ListMerchantPrincipals(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	principals, err := h.principalService.ListByMerchant(c.UserContext(), merchantID, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Principals retrieved", principals)
}

func (h *PrincipalHandler) GetOwnershipSummary(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	summary, err := h.principalService.OwnershipSummary(c.UserContext(), merchantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Ownership summary", summary)
}

func (h *PrincipalHandler) GetPrincipal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	p, err := h.principalService.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Principal retrieved", p)
}

func (h *PrincipalHandler) UpdatePrincipal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input principal.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, err := h.principalService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Principal updated successfully", p)
}

func (h *PrincipalHandler) DeletePrincipal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.principalService.Delete(c.UserContext(), id, utils.Actor(c)); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PrincipalHandler) RestorePrincipal(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	p, err := h.principalService.Restore(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Principal restored", p)
}

// SearchBySSN takes the SSN in the body so it never lands in access logs.
func (h *PrincipalHandler) SearchBySSN(c *fiber.Ctx) error {
	var input struct {
		SSN string `json:"ssn"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	principals, err := h.principalService.SearchBySSN(c.UserContext(), input.SSN)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Principals retrieved", principals)
}
