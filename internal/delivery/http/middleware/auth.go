package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"go.uber.org/zap"

	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/utils"
)

// publicPrefixes are reachable without an API key.
var publicPrefixes = []string{
	"/swagger",
	"/api/v1/health",
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// APIKey - проверка статического ключа API в заголовке header.
// Пустой token отключает проверку.
func APIKey(header, token string, logger *zap.Logger) fiber.Handler {
	if token == "" {
		logger.Warn("API_TOKEN is empty, API key check is disabled")
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	expected := []byte(token)
	return keyauth.New(keyauth.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || isPublic(c.Path())
		},
		KeyLookup: "header:" + header,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), expected) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return utils.SendError(c, errors.ErrUnauthorized)
		},
	})
}
