package main

import (
	"net/http"
	"strconv"

	"KobbyWearsAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// registerProductRoutes mounts the public catalog endpoints.
//
//	GET /products          -> list (?category=, ?featured=true)
//	GET /products/:id      -> get
func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	g.GET("/products", func(c echo.Context) error {
		ctx := c.Request().Context()
		category := c.QueryParam("category")
		featured := c.QueryParam("featured") == "true"

		list, err := ps.List(ctx, category, featured)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "error fetching products"})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		}
		p, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, p)
	})
}
