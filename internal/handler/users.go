package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/motlib/library-service/internal/model"
)

func (h *Handler) GetUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.authSvc.Users())
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req model.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.authSvc.UpdateUser(c.Param("userId"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
