package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/util"
	authmw "github.com/Skotchmaster/job_board/pkg/middleware/auth"
)

func actor(c echo.Context) service.Actor {
	return service.Actor{UserID: authmw.UserID(c), Role: authmw.Role(c)}
}

func pageParams(c echo.Context) (page, size int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size = util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return page, size
}
