package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"auction-registration/internal/usecase/deposit"
)

type verifyDepositRequest struct {
	PaymentID string `json:"payment_id" validate:"required,min=8,max=64"`
}

func (h *Handler) InitiateDeposit(c echo.Context) error {
	registrationID := pathID(c, "registration_id")
	if registrationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	dto, err := h.Deposits.Initiate(c.Request().Context(), deposit.InitiateInput{
		RegistrationID: registrationID,
		UserID:         userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *Handler) VerifyDeposit(c echo.Context) error {
	registrationID := pathID(c, "registration_id")
	if registrationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	var req verifyDepositRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed body", Code: codeBadRequest})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	res, err := h.Deposits.VerifyAndConfirm(c.Request().Context(), deposit.VerifyInput{
		RegistrationID: registrationID,
		PaymentID:      req.PaymentID,
		UserID:         userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
