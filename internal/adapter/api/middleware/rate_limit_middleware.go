package middleware

import (
	"net/http"
	"strconv"

	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
)

// RateLimit throttles action per client address.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				logger.Warn().Str("ip", ip).Str("action", action).Dur("retry_after", wait).Msg("rate limit exceeded")
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, response.MessageBody{
					Code:    "RATE_LIMITED",
					Message: "Too many attempts, please try again later",
				})
			}
			return next(c)
		}
	}
}
