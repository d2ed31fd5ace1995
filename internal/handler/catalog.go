package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"provideo-rentals/internal/model"
	"provideo-rentals/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Get(c echo.Context) error {
	doc, err := h.catalogService.Get()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Replace swaps the whole catalog document. There is no per-item endpoint;
// the admin editor submits the full document it loaded and edited.
func (h *CatalogHandler) Replace(c echo.Context) error {
	var doc model.CatalogDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.catalogService.Replace(&doc); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, &doc)
}
