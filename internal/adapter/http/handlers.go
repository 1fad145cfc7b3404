package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"auction-registration/internal/usecase/approval"
	"auction-registration/internal/usecase/deposit"
	regucase "auction-registration/internal/usecase/registration"
)

type Handler struct {
	Registrations *regucase.Usecase
	Approvals     *approval.Usecase
	Deposits      *deposit.Usecase
}

func NewHandler(r *regucase.Usecase, a *approval.Usecase, d *deposit.Usecase) *Handler {
	return &Handler{Registrations: r, Approvals: a, Deposits: d}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// pathID pulls a 32-char hex id from a path param, empty string when
// malformed.
func pathID(c echo.Context, name string) string {
	v := strings.TrimSpace(c.Param(name))
	if !reHex32.MatchString(v) {
		return ""
	}
	return v
}

// RegisterRoutes wires every endpoint. The idempotency middleware guards the
// bidder-facing mutations only; admin review actions are idempotent at the
// domain level (repeats come back as conflicts).
func (h *Handler) RegisterRoutes(e *echo.Echo, idemp echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	reg := e.Group("/auctions/:auction_id/registration")
	if idemp != nil {
		reg.Use(idemp)
	}
	reg.POST("", h.CreateRegistration)
	reg.GET("", h.GetRegistration)
	reg.POST("/withdraw", h.WithdrawRegistration)
	reg.POST("/check-in", h.CheckInRegistration)

	dep := e.Group("/registrations/:registration_id/deposit")
	if idemp != nil {
		dep.Use(idemp)
	}
	dep.POST("/initiate", h.InitiateDeposit)
	dep.POST("/verify", h.VerifyDeposit)

	adm := e.Group("/admin/registrations")
	adm.POST("/:registration_id/verify", h.VerifyDocuments)
	adm.POST("/:registration_id/reject", h.RejectDocuments)
	adm.POST("/:registration_id/approve", h.ApproveFinal)
	adm.GET("", h.ListRegistrations)
}
