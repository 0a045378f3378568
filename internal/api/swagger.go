package api

import (
	"github.com/Aka-Ayaan/courtify/docs"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func RegisterSwagger(app *fiber.App) {
	// swagger doc points at the host and scheme the caller used
	app.Use("/swagger", func(c *fiber.Ctx) error {
		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{c.Protocol()}
		return c.Next()
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
