package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/motlib/library-service/internal/model"
)

func (h *Handler) GetRequests(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.requestSvc.List(user))
}

func (h *Handler) CreateRequest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req model.SubmitRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := h.requestSvc.Submit(user.ID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) ApproveRequest(c echo.Context) error {
	resolver, err := currentUser(c)
	if err != nil {
		return err
	}
	approved, err := h.requestSvc.Approve(c.Param("requestId"), resolver.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, approved)
}

func (h *Handler) RejectRequest(c echo.Context) error {
	resolver, err := currentUser(c)
	if err != nil {
		return err
	}
	rejected, err := h.requestSvc.Reject(c.Param("requestId"), resolver.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rejected)
}

func (h *Handler) CancelRequest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	cancelled, err := h.requestSvc.Cancel(c.Param("requestId"), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cancelled)
}
