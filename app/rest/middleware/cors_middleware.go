package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// defaultOrigins covers the local frontend during development.
var defaultOrigins = []string{"http://localhost:3000"}

// CORS returns CORS middleware for the given origins. With no origins it
// falls back to the local development frontend.
func CORS(origins ...string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			echo.GET,
			echo.POST,
			echo.PUT,
			echo.DELETE,
			echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})
}
