package middleware

import "github.com/gofiber/fiber/v2"

// NgrokHeaders marks responses so the ngrok interstitial page does
// not swallow webhook verification calls during development tunnels.
func NgrokHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("ngrok-skip-browser-warning", "true")
		return c.Next()
	}
}
