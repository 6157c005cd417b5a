package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// Разрешён любой origin, credentials не передаются.
func CORS(tokenHeader string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language," + tokenHeader,
		ExposeHeaders: "X-Request-ID,X-Cache",
	})
}
