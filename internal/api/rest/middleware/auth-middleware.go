package middleware

import (
	"strings"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func OwnerOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(dto.AuthResponse)
		if !ok || user.UserID == 0 {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
		}

		if user.UserType != string(domain.UserTypeOwner) {
			return utils.ResponseError(ctx, fiber.StatusForbidden, "arena owners only")
		}

		return ctx.Next()
	}
}
