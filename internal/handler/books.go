package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/motlib/library-service/internal/model"
)

func (h *Handler) GetBooks(c echo.Context) error {
	search := c.QueryParam("search")
	return c.JSON(http.StatusOK, h.catalogSvc.ListBooks(search))
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Param("bookId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var data model.BookData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&data); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.catalogSvc.AddBook(data))
}

func (h *Handler) UpdateBook(c echo.Context) error {
	bookID := c.Param("bookId")
	var data model.BookData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&data); err != nil {
		return err
	}
	book, err := h.catalogSvc.UpdateBook(bookID, data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.catalogSvc.DeleteBook(c.Param("bookId")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GenerateSampleBooks(c echo.Context) error {
	var req model.GenerateSamplesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	books, err := h.catalogSvc.LoadSampleBooks(c.Request().Context(), req.Count)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, books)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	rec, err := h.borrowSvc.Return(user.ID, c.Param("bookId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetBorrowHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, h.borrowSvc.History())
}

func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.statsSvc.Summary())
}
