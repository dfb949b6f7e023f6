package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingPersistsVerbatim(t *testing.T) {
	db, mock := newMockDB(t)
	h := &Handler{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	app := newTestApp(t, func(app *iris.Application) {
		app.Post("/api/v1/bookings/create", h.CreateBooking)
	})

	payload := `{
		"customerId": 1,
		"hostId": 2,
		"listingId": 3,
		"startDate": "2026-09-05",
		"endDate": "2026-09-10",
		"totalPrice": 600
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/create", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(app, req)

	require.Equal(t, iris.StatusCreated, resp.Code)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)

	var created struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, float64(600), created.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The date range is stored exactly as submitted: an end date before the start
// date is accepted, and the total price is not cross-checked against the
// listing's nightly rate.
func TestCreateBookingAcceptsReversedDates(t *testing.T) {
	db, mock := newMockDB(t)
	h := &Handler{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	app := newTestApp(t, func(app *iris.Application) {
		app.Post("/api/v1/bookings/create", h.CreateBooking)
	})

	payload := `{
		"customerId": 1,
		"hostId": 2,
		"listingId": 3,
		"startDate": "2026-09-10",
		"endDate": "2026-09-05",
		"totalPrice": 1
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/create", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(app, req)

	require.Equal(t, iris.StatusCreated, resp.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingMissingDates(t *testing.T) {
	db, mock := newMockDB(t)
	h := &Handler{DB: db}

	app := newTestApp(t, func(app *iris.Application) {
		app.Post("/api/v1/bookings/create", h.CreateBooking)
	})

	payload := `{"customerId": 1, "hostId": 2, "listingId": 3, "totalPrice": 600}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/create", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(app, req)

	require.Equal(t, iris.StatusBadRequest, resp.Code)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	require.NoError(t, mock.ExpectationsWereMet())
}
