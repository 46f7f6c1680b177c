package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	md "github.com/motlib/library-service/pkg/middleware"
	"github.com/motlib/library-service/pkg/validate"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	catalogSvc CatalogService
	requestSvc RequestService
	borrowSvc  BorrowService
	authSvc    AuthService
	statsSvc   StatsService
	log        *zap.Logger
}

func New(catalog CatalogService, requests RequestService, borrows BorrowService, auth AuthService, stats StatsService, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalog,
		requestSvc: requests,
		borrowSvc:  borrows,
		authSvc:    auth,
		statsSvc:   stats,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	authed := api.Group("", h.sessionAuth)
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)

	authed.GET("/books", h.GetBooks)
	authed.GET("/books/:bookId", h.GetBook)
	authed.POST("/books/:bookId/return", h.ReturnBook)

	authed.GET("/requests", h.GetRequests)
	authed.POST("/requests", h.CreateRequest)
	authed.POST("/requests/:requestId/cancel", h.CancelRequest)

	staff := authed.Group("", h.requireStaff)
	staff.POST("/books", h.CreateBook)
	staff.PUT("/books/:bookId", h.UpdateBook)
	staff.DELETE("/books/:bookId", h.DeleteBook)
	staff.POST("/books/sample", h.GenerateSampleBooks)
	staff.POST("/requests/:requestId/approve", h.ApproveRequest)
	staff.POST("/requests/:requestId/reject", h.RejectRequest)
	staff.GET("/borrows", h.GetBorrowHistory)
	staff.GET("/stats", h.GetStats)

	admin := authed.Group("", h.requireRole(model.RoleAdmin))
	admin.GET("/users", h.GetUsers)
	admin.PATCH("/users/:userId", h.UpdateUser)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps workflow failures onto status codes. Business-rule
// violations are conflicts, never internal errors.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrRequestNotFound),
		errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrNoCopies),
		errors.Is(err, errs.ErrQuantityTooLow),
		errors.Is(err, errs.ErrBookBorrowed),
		errors.Is(err, errs.ErrDuplicateEmail),
		errors.Is(err, errs.ErrDuplicateRequest),
		errors.Is(err, errs.ErrAlreadyBorrowed),
		errors.Is(err, errs.ErrAlreadyResolved),
		errors.Is(err, errs.ErrNoOpenBorrow):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidSession):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrSampleGen):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
