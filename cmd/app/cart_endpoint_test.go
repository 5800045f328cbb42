package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"KobbyWearsAPI/internal/middleware"
	"KobbyWearsAPI/internal/repository"
	"KobbyWearsAPI/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartServer(t *testing.T) (*echo.Echo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cartSvc := services.NewCartService(repository.NewCartRepository(mock), repository.NewProductRepository(mock))
	e := echo.New()
	registerCartRoutes(e.Group(""), cartSvc)
	return e, mock
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, "kobby", 1)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetCartReturnsJoinedLines(t *testing.T) {
	e, mock := newCartServer(t)

	mock.ExpectQuery(`INSERT INTO carts`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT ci.id, ci.product_id, p.name`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "name", "price", "img_url", "quantity", "size", "color"}).
			AddRow(int64(1), int64(7), "Classic Tee", 19.99, "https://img/tee.png", 3, "M", "Black"))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", bearer(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_id":7`)
	assert.Contains(t, rec.Body.String(), `"quantity":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartRequiresToken(t *testing.T) {
	e, _ := newCartServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItemRequiresProductID(t *testing.T) {
	e, _ := newCartServer(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", bearer(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateForeignItemIsNotFound(t *testing.T) {
	e, mock := newCartServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT ci.quantity`).
		WithArgs(int64(11), int64(7)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodPut, "/cart/items/11", strings.NewReader(`{"delta":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", bearer(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNeedsQuantityOrDelta(t *testing.T) {
	e, _ := newCartServer(t)

	req := httptest.NewRequest(http.MethodPut, "/cart/items/11", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", bearer(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearCartOK(t *testing.T) {
	e, mock := newCartServer(t)

	mock.ExpectExec(`DELETE FROM cartitems ci USING carts c`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req.Header.Set("Authorization", bearer(t, 7))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
