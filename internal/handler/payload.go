package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/repository"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

type PayloadHandler struct {
	svc *service.DashboardService
}

func NewPayloadHandler(svc *service.DashboardService) *PayloadHandler {
	return &PayloadHandler{svc: svc}
}

// Put handles PUT /api/payloads/:slot
func (h *PayloadHandler) Put(c fiber.Ctx) error {
	slot, errMsg := middleware.ValidateSlot(c.Params("slot"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	// Copy: the request body buffer is reused after the handler returns.
	body := append([]byte(nil), c.Body()...)
	if errMsg := middleware.ValidatePayload(body); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", errMsg)
	}

	stored, err := h.svc.PutPayload(c.Context(), slot, body)
	if err != nil {
		return storeError(c, err, "Failed to store payload")
	}
	recordPayloadWrite(string(slot))

	return c.JSON(stored)
}

// Get handles GET /api/payloads/:slot
// Responds with the stored payload exactly as it was written.
func (h *PayloadHandler) Get(c fiber.Ctx) error {
	slot, errMsg := middleware.ValidateSlot(c.Params("slot"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	stored, err := h.svc.GetPayload(c.Context(), slot)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No payload stored for slot")
		}
		return storeError(c, err, "Failed to load payload")
	}

	c.Set("X-Payload-Digest", stored.Digest)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(stored.Body)
}

// Delete handles DELETE /api/payloads/:slot
func (h *PayloadHandler) Delete(c fiber.Ctx) error {
	slot, errMsg := middleware.ValidateSlot(c.Params("slot"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.DeletePayload(c.Context(), slot); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No payload stored for slot")
		}
		return storeError(c, err, "Failed to delete payload")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
