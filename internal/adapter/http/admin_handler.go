package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/usecase/approval"
)

type rejectDocumentsRequest struct {
	Reason string `json:"reason" validate:"required,nonblank,max=1000"`
}

func (h *Handler) adminID(c echo.Context) (string, error) {
	adminID := headerID(c, "Ax-Admin-Id")
	if adminID == "" {
		return "", c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Admin-Id", Code: codeBadRequest})
	}
	return adminID, nil
}

func (h *Handler) VerifyDocuments(c echo.Context) error {
	registrationID := pathID(c, "registration_id")
	if registrationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration_id", Code: codeBadRequest})
	}
	adminID, errResp := h.adminID(c)
	if adminID == "" {
		return errResp
	}

	dto, err := h.Approvals.VerifyDocuments(c.Request().Context(), approval.VerifyInput{
		RegistrationID: registrationID,
		AdminID:        adminID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) RejectDocuments(c echo.Context) error {
	registrationID := pathID(c, "registration_id")
	if registrationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration_id", Code: codeBadRequest})
	}
	adminID, errResp := h.adminID(c)
	if adminID == "" {
		return errResp
	}

	var req rejectDocumentsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed body", Code: codeBadRequest})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	dto, err := h.Approvals.RejectDocuments(c.Request().Context(), approval.RejectInput{
		RegistrationID: registrationID,
		AdminID:        adminID,
		Reason:         req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ApproveFinal(c echo.Context) error {
	registrationID := pathID(c, "registration_id")
	if registrationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration_id", Code: codeBadRequest})
	}
	adminID, errResp := h.adminID(c)
	if adminID == "" {
		return errResp
	}

	dto, err := h.Approvals.ApproveFinal(c.Request().Context(), approval.ApproveInput{
		RegistrationID: registrationID,
		AdminID:        adminID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ListRegistrations(c echo.Context) error {
	adminID, errResp := h.adminID(c)
	if adminID == "" {
		return errResp
	}

	in := approval.ListInput{
		AdminID:   adminID,
		AuctionID: c.QueryParam("auction_id"),
		Bucket:    regdomain.StatusBucket(c.QueryParam("status")),
	}
	if in.AuctionID != "" && !reHex32.MatchString(in.AuctionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid auction_id", Code: codeBadRequest})
	}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page", Code: codeBadRequest})
		}
		in.Page = n
	}
	if v := c.QueryParam("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page_size", Code: codeBadRequest})
		}
		in.PageSize = n
	}

	out, err := h.Approvals.List(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
