package handlers

import (
	"net/url"

	"github.com/Aka-Ayaan/courtify/internal/api/rest/middleware"
	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/helper/utils"
	"github.com/Aka-Ayaan/courtify/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc         services.AuthService
	auth        helper.Auth
	frontendURL string
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth, frontendURL string) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth, frontendURL: frontendURL}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Get("/validate", h.Validate)
	auth.Post("/signup", h.Signup)
	auth.Get("/verify", h.Verify)
	auth.Post("/resend", h.Resend)
	auth.Get("/me", middleware.AuthMiddleware(h.auth), h.Me)
}

// Validate godoc
// @Summary Log in
// @Description Checks credentials and issues a bearer token.
// @Tags auth
// @Produce json
// @Param email query string true "Email"
// @Param password query string true "Password"
// @Param userType query string false "player | owner (arena_owners)"
// @Success 200 {object} dto.Identity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/validate [get]
func (h *AuthHandler) Validate(ctx *fiber.Ctx) error {
	var query dto.CredentialsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Email and password required")
	}

	identity, err := h.svc.ValidateCredentials(ctx.UserContext(), query)
	if err != nil {
		// unknown accounts look the same as a wrong password
		if domain.IsKind(err, domain.KindNotFound) {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, identity)
}

// Signup godoc
// @Summary Register a player or arena owner
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Signup payload"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var body dto.SignupRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Email and password required")
	}

	if err := h.svc.RegisterAccount(ctx.UserContext(), body); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusCreated, "Account created. Check your email to verify.")
}

// Verify godoc
// @Summary Activate an account from the emailed link
// @Tags auth
// @Produce plain
// @Param token query string true "Verification token"
// @Success 302
// @Failure 400 {string} string "Invalid or expired token"
// @Failure 500 {string} string "Server error"
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(ctx *fiber.Ctx) error {
	userType, err := h.svc.VerifyToken(ctx.UserContext(), ctx.Query("token"))
	if err != nil {
		status := utils.StatusOf(err)
		if status == fiber.StatusInternalServerError {
			return ctx.Status(status).SendString("Server error")
		}
		return ctx.Status(status).SendString(domain.MessageOf(err))
	}

	target := h.frontendURL + "/?verified=1&type=" + url.QueryEscape(string(userType))
	return ctx.Redirect(target, fiber.StatusFound)
}

// Resend godoc
// @Summary Send a fresh verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResendRequest true "Account"
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/resend [post]
func (h *AuthHandler) Resend(ctx *fiber.Ctx) error {
	var body dto.ResendRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Email required")
	}

	if err := h.svc.ResendVerification(ctx.UserContext(), body); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusAccepted, "Verification email sent. Check your inbox.")
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Identity
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	identity, err := h.svc.CurrentAccount(ctx.UserContext(), user.UserID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusOK, identity)
}
