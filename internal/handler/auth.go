package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/motlib/library-service/internal/model"
)

const (
	authorizationHeader = "Authorization"
	bearer              = "Bearer "

	currentUserKey  = "currentUser"
	sessionTokenKey = "sessionToken"
)

// sessionAuth resolves the bearer token into the current user and puts
// both on the request context. Unknown tokens and inactive accounts are
// the same 401.
func (h *Handler) sessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get(authorizationHeader)
		if authorization == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
		}
		if !strings.HasPrefix(authorization, bearer) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
		}
		token := strings.TrimPrefix(authorization, bearer)

		user, err := h.authSvc.Authenticate(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		c.Set(currentUserKey, user)
		c.Set(sessionTokenKey, token)
		return next(c)
	}
}

func (h *Handler) requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if !user.Role.IsStaff() {
			return echo.NewHTTPError(http.StatusForbidden, "staff access required")
		}
		return next(c)
	}
}

func (h *Handler) requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := currentUser(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) (model.User, error) {
	user, ok := c.Get(currentUserKey).(model.User)
	if !ok {
		return model.User{}, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	return user, nil
}

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.authSvc.Register(req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	resp, err := h.authSvc.Login(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Logout(c echo.Context) error {
	token, ok := c.Get(sessionTokenKey).(string)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if err := h.authSvc.Logout(c.Request().Context(), token); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
