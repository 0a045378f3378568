package handlers

import (
	"strconv"

	"github.com/Aka-Ayaan/courtify/internal/api/rest/middleware"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/helper/utils"
	"github.com/Aka-Ayaan/courtify/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ArenaHandler struct {
	svc  services.CatalogService
	auth helper.Auth
}

func NewArenaHandler(svc services.CatalogService, auth helper.Auth) *ArenaHandler {
	return &ArenaHandler{svc: svc, auth: auth}
}

func (h *ArenaHandler) SetupRoutes(app *fiber.App) {
	ownerOnly := []fiber.Handler{middleware.AuthMiddleware(h.auth), middleware.OwnerOnly()}

	app.Get("/arenas", h.ListArenas)
	app.Post("/arenas", append(ownerOnly, h.CreateArena)...)
	app.Get("/owner/arenas", append(ownerOnly, h.ListOwnerArenas)...)

	arena := app.Group("/arena")
	arena.Get("/:id", h.GetArena)
	arena.Get("/:id/slots", h.TimeSlots)
	arena.Post("/:id/courts", append(ownerOnly, h.AddCourt)...)

	app.Get("/court-types", h.ListCourtTypes)
}

// arenaID parses :id. Anything that is not a positive integer cannot name an arena.
func arenaID(ctx *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func arenaNotFound(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusNotFound, "Arena not found")
}

// ListArenas godoc
// @Summary List arenas, newest first, with their primary image
// @Tags arenas
// @Produce json
// @Success 200 {array} dto.ArenaSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /arenas [get]
func (h *ArenaHandler) ListArenas(ctx *fiber.Ctx) error {
	arenas, err := h.svc.ListArenas(ctx.UserContext())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, arenas)
}

// CreateArena godoc
// @Summary Register a facility
// @Tags arenas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateArenaRequest true "Arena"
// @Success 201 {object} dto.ArenaDetail
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /arenas [post]
func (h *ArenaHandler) CreateArena(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var body dto.CreateArenaRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	detail, err := h.svc.CreateArena(ctx.UserContext(), user.UserID, body)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusCreated, detail)
}

// ListOwnerArenas godoc
// @Summary Arenas owned by the caller
// @Tags arenas
// @Produce json
// @Security BearerAuth
// @Param ownerId query int false "Must match the token subject when given"
// @Success 200 {array} dto.ArenaSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /owner/arenas [get]
func (h *ArenaHandler) ListOwnerArenas(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if raw := ctx.Query("ownerId"); raw != "" && raw != strconv.FormatUint(uint64(user.UserID), 10) {
		return utils.ResponseError(ctx, fiber.StatusForbidden, "You can only list your own arenas")
	}

	arenas, err := h.svc.ListOwnerArenas(ctx.UserContext(), user.UserID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, arenas)
}

// GetArena godoc
// @Summary Arena detail with images and courts grouped by type
// @Tags arenas
// @Produce json
// @Param id path int true "Arena ID"
// @Success 200 {object} dto.ArenaDetail
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /arena/{id} [get]
func (h *ArenaHandler) GetArena(ctx *fiber.Ctx) error {
	id, ok := arenaID(ctx)
	if !ok {
		return arenaNotFound(ctx)
	}

	detail, err := h.svc.GetArenaDetail(ctx.UserContext(), id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, detail)
}

// TimeSlots godoc
// @Summary Hourly booking slots derived from the arena timing
// @Tags arenas
// @Produce json
// @Param id path int true "Arena ID"
// @Success 200 {object} dto.TimeSlotsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /arena/{id}/slots [get]
func (h *ArenaHandler) TimeSlots(ctx *fiber.Ctx) error {
	id, ok := arenaID(ctx)
	if !ok {
		return arenaNotFound(ctx)
	}

	slots, err := h.svc.ArenaTimeSlots(ctx.UserContext(), id)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, slots)
}

// AddCourt godoc
// @Summary Add a court to an owned arena
// @Tags arenas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Arena ID"
// @Param body body dto.AddCourtRequest true "Court"
// @Success 201 {object} dto.CourtResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /arena/{id}/courts [post]
func (h *ArenaHandler) AddCourt(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := arenaID(ctx)
	if !ok {
		return arenaNotFound(ctx)
	}

	var body dto.AddCourtRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "courtType and name required")
	}

	court, err := h.svc.AddCourt(ctx.UserContext(), user.UserID, id, body)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusCreated, court)
}

// ListCourtTypes godoc
// @Summary Known court types
// @Tags arenas
// @Produce json
// @Success 200 {array} dto.CourtTypeResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /court-types [get]
func (h *ArenaHandler) ListCourtTypes(ctx *fiber.Ctx) error {
	types, err := h.svc.ListCourtTypes(ctx.UserContext())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, types)
}
