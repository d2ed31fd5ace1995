package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/service"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) ListPublished(c echo.Context) error {
	posts, err := h.blogService.ListPublished(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) GetBySlug(c echo.Context) error {
	post, err := h.blogService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) ListAll(c echo.Context) error {
	posts, err := h.blogService.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Create(c echo.Context) error {
	var req dto.BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationError(details)
	}

	post, err := h.blogService.Create(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) Update(c echo.Context) error {
	var req dto.BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if details := dto.Validate(&req); details != nil {
		return validationError(details)
	}

	post, err := h.blogService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.blogService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
