package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	regdomain "auction-registration/internal/domain/registration"
	regucase "auction-registration/internal/usecase/registration"
)

type documentPayload struct {
	Type string `json:"type" validate:"required,nonblank"`
	URL  string `json:"url" validate:"required,url"`
}

type createRegistrationRequest struct {
	Documents []documentPayload `json:"documents" validate:"required,min=1,max=20,dive"`
}

type withdrawRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

func toDomainDocs(in []documentPayload) []regdomain.DocumentURL {
	out := make([]regdomain.DocumentURL, 0, len(in))
	for _, d := range in {
		out = append(out, regdomain.DocumentURL{Type: d.Type, URL: d.URL})
	}
	return out
}

func (h *Handler) CreateRegistration(c echo.Context) error {
	auctionID := pathID(c, "auction_id")
	if auctionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auction_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	var req createRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed body", Code: codeBadRequest})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	dto, err := h.Registrations.Create(c.Request().Context(), regucase.CreateInput{
		AuctionID: auctionID,
		UserID:    userID,
		Documents: toDomainDocs(req.Documents),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *Handler) GetRegistration(c echo.Context) error {
	auctionID := pathID(c, "auction_id")
	if auctionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auction_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	dto, err := h.Registrations.Get(c.Request().Context(), auctionID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) WithdrawRegistration(c echo.Context) error {
	auctionID := pathID(c, "auction_id")
	if auctionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auction_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	var req withdrawRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed body", Code: codeBadRequest})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	dto, err := h.Registrations.Withdraw(c.Request().Context(), regucase.WithdrawInput{
		AuctionID: auctionID,
		UserID:    userID,
		Reason:    req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) CheckInRegistration(c echo.Context) error {
	auctionID := pathID(c, "auction_id")
	if auctionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auction_id", Code: codeBadRequest})
	}
	userID := headerID(c, "Ax-User-Id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-User-Id", Code: codeBadRequest})
	}

	dto, err := h.Registrations.CheckIn(c.Request().Context(), regucase.CheckInInput{
		AuctionID: auctionID,
		UserID:    userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
