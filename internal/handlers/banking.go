package handlers

import (
	"mcacrm/internal/services/banking"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type BankingHandler struct {
	bankingService banking.Service
}

func NewBankingHandler(bankingSvc banking.Service) *BankingHandler {
	return &BankingHandler{bankingService: bankingSvc}
}

func (h *BankingHandler) CreateBankAccount(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input banking.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	account, err := h.bankingService.Create(c.UserContext(), merchantID, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Bank account created successfully", account)
}

func (h *BankingHandler) ListMerchantBankAccounts(c *fiber.Ctx) error {
	merchantID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	accounts, err := h.bankingService.ListByMerchant(c.UserContext(), merchantID, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bank accounts retrieved", accounts)
}

func (h *BankingHandler) GetBankAccount(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	account, err := h.bankingService.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bank account retrieved", account)
}

func (h *BankingHandler) UpdateBankAccount(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input banking.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.bankingService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bank account updated successfully", account)
}

func (h *BankingHandler) SetPrimaryBankAccount(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	account, err := h.bankingService.SetPrimary(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Primary bank account set", account)
}

func (h *BankingHandler) DeleteBankAccount(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.bankingService.Delete(c.UserContext(), id, utils.Actor(c)); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BankingHandler) RestoreBankAccount(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	account, err := h.bankingService.Restore(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bank account restored", account)
}
