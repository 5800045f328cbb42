package main

import (
	"errors"
	"net/http"
	"strconv"

	"KobbyWearsAPI/internal/middleware"
	"KobbyWearsAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// updateCartItemRequest carries either an absolute quantity or a delta.
// A delta is applied atomically server-side; absolute sets of zero or less
// remove the line.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity,omitempty"`
	Delta    *int `json:"delta,omitempty"`
}

func cartError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrCartItemNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "something went wrong"})
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	cart := g.Group("/cart")
	cart.Use(middleware.JWTMiddleware())

	// GET /cart
	cart.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		lines, err := cs.List(c.Request().Context(), claims.UserID)
		if err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, lines)
	})

	// ADD item
	cart.POST("/items", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addCartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		}
		if err := cs.Add(c.Request().Context(), claims.UserID, req.ProductID, req.Quantity, req.Size, req.Color); err != nil {
			if errors.Is(err, services.ErrCartItemNotFound) {
				return cartError(c, err)
			}
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]string{"message": "item added to cart"})
	})

	// UPDATE quantity (absolute or delta)
	cart.PUT("/items/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		req := new(updateCartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		ctx := c.Request().Context()
		switch {
		case req.Delta != nil:
			qty, err := cs.Adjust(ctx, claims.UserID, itemID, *req.Delta)
			if err != nil {
				return cartError(c, err)
			}
			return c.JSON(http.StatusOK, map[string]interface{}{"message": "cart item updated", "quantity": qty})
		case req.Quantity != nil:
			if err := cs.SetQuantity(ctx, claims.UserID, itemID, *req.Quantity); err != nil {
				return cartError(c, err)
			}
			return c.JSON(http.StatusOK, map[string]string{"message": "cart item updated"})
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "quantity or delta is required"})
		}
	})

	// REMOVE item
	cart.DELETE("/items/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		if err := cs.Remove(c.Request().Context(), claims.UserID, itemID); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "item removed from cart"})
	})

	// CLEAR cart
	cart.DELETE("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.Clear(c.Request().Context(), claims.UserID); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
	})
}
