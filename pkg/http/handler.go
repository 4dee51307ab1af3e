package http

import "github.com/labstack/echo/v4"

// Handler registers routes on the Echo instance owned by Server.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
