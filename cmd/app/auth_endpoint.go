package main

import (
	"errors"
	"net/http"

	"KobbyWearsAPI/internal/middleware"
	"KobbyWearsAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		_, err := authSvc.Register(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "registration successful"})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
		}

		token, err := middleware.GenerateToken(user.ID, user.Username, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"id":         user.ID,
				"username":   user.Username,
				"created_at": user.CreatedAt,
			},
		})
	}
}

// profileHandler returns the authenticated user's info
func profileHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		u, err := authSvc.Profile(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusOK, u)
	}
}

func updateProfileHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := authSvc.Rename(c.Request().Context(), claims.UserID, req.Username); err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	// public
	g.POST("/register", registerHandler(authSvc))
	g.POST("/login", loginHandler(authSvc))

	// authenticated
	protected := g.Group("/profile")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("", profileHandler(authSvc))
	protected.PUT("", updateProfileHandler(authSvc))
}
