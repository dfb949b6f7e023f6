package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vijaypatidar123/Dream-Nest/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

func newTestTokens(t *testing.T) *utils.TokenService {
	t.Helper()

	mr := miniredis.RunT(t)
	return &utils.TokenService{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Redis:         redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
}

func newTestApp(t *testing.T, register func(app *iris.Application)) *iris.Application {
	t.Helper()

	app := iris.New()
	app.Validator = validator.New()
	register(app)
	require.NoError(t, app.Build())

	return app
}

func serve(app *iris.Application, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return env
}
