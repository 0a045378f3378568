package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Aka-Ayaan/courtify/internal/api/rest/middleware"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/helper/utils"
	"github.com/Aka-Ayaan/courtify/internal/services"
	pkgutils "github.com/Aka-Ayaan/courtify/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 * 1024 * 1024 //5MB

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type UploadHandler struct {
	svc  services.CatalogService
	auth helper.Auth
}

func NewUploadHandler(svc services.CatalogService, auth helper.Auth) *UploadHandler {
	return &UploadHandler{svc: svc, auth: auth}
}

func (h *UploadHandler) SetupRoutes(app *fiber.App) {
	app.Post("/arena/:id/images",
		middleware.AuthMiddleware(h.auth),
		middleware.OwnerOnly(),
		h.UploadArenaImage,
	)
}

// UploadArenaImage godoc
// @Summary Upload an arena photo
// @Description jpg/jpeg/png/webp up to 5MB; stored as JPEG.
// @Tags arenas
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Arena ID"
// @Param file formData file true "Image"
// @Success 201 {object} dto.ArenaImageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /arena/{id}/images [post]
func (h *UploadHandler) UploadArenaImage(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := arenaID(ctx)
	if !ok {
		return arenaNotFound(ctx)
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxImageSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	data, err := pkgutils.ReadAllLimit(f, maxImageSize)
	if err != nil {
		if errors.Is(err, pkgutils.ErrTooLarge) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot read uploaded file")
	}

	image, err := h.svc.AddArenaImage(ctx.UserContext(), user.UserID, id, data)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseJSON(ctx, fiber.StatusCreated, image)
}
