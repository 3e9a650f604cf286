package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// Start はechoを組み立てて起動する。
func Start(
	addr string,
	cfg config.Config,
	authH *handler.AuthHandler,
	cartH *handler.CartHandler,
	accountH *handler.AccountHandler,
) error {
	e := echo.New()
	e.HideBanner = true

	RegisterRoutes(e, cfg, authH, cartH, accountH)

	return e.Start(addr)
}
