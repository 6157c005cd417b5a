package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/utils"
)

// ResponseCache caches GET responses for ttl. Keys are the full original URL,
// so different query strings are cached separately. A nil storage keeps
// entries in process memory.
func ResponseCache(ttl time.Duration, storage fiber.Storage) fiber.Handler {
	return cache.New(cache.Config{
		Next: func(c *fiber.Ctx) bool {
			return isPublic(c.Path())
		},
		Expiration:  ttl,
		CacheHeader: "X-Cache",
		KeyGenerator: func(c *fiber.Ctx) string {
			return utils.CopyString(c.OriginalURL())
		},
		Storage: storage,
		Methods: []string{fiber.MethodGet},
	})
}
