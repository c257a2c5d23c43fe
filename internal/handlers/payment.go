package handlers

import (
	"mcacrm/internal/services/payment"
	"mcacrm/internal/utils"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentSvc payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentSvc}
}

func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	var input payment.RecordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	p, err := h.paymentService.Record(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Payment recorded successfully", p)
}

func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	opts, p := listOptions(c)
	opts.Search = c.Query("type")
	payments, total, err := h.paymentService.List(c.UserContext(), opts)
	if err != nil {
		return response.FromError(c, err)
	}
	return paged(c, p, total, payments)
}

func (h *PaymentHandler) ListDealPayments(c *fiber.Ctx) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	payments, err := h.paymentService.ListByDeal(c.UserContext(), dealID, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payments retrieved", payments)
}

func (h *PaymentHandler) GetDealPaymentSummary(c *fiber.Ctx) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	summary, err := h.paymentService.Summary(c.UserContext(), dealID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment summary", summary)
}

func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	p, err := h.paymentService.Get(c.UserContext(), id, includeDeleted(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment retrieved", p)
}

func (h *PaymentHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var input payment.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, err := h.paymentService.Update(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment updated successfully", p)
}

func (h *PaymentHandler) MarkBounced(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input := payment.BounceInput{Bounced: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	p, err := h.paymentService.MarkBounced(c.UserContext(), id, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment bounce status updated", p)
}

func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.paymentService.Delete(c.UserContext(), id, utils.Actor(c)); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PaymentHandler) RestorePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	p, err := h.paymentService.Restore(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment restored", p)
}

func (h *PaymentHandler) GetRecentPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.Recent(c.UserContext(), c.QueryInt("days"), c.QueryInt("limit"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Recent payments", payments)
}

func (h *PaymentHandler) GetBouncedPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.Bounced(c.UserContext(), queryID(c, "deal_id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Bounced payments", payments)
}

func (h *PaymentHandler) GetStatsByType(c *fiber.Ctx) error {
	stats, err := h.paymentService.StatsByType(c.UserContext(), queryID(c, "deal_id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment statistics by type", stats)
}
