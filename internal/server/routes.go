package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
	accountH *handler.AccountHandler,
) {
	authH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	accountH.RegisterRoutes(e, cfg)
}
