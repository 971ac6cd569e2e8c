package initialize

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeblessed/backend/app/dto"
	"timeblessed/config"
	"timeblessed/service"
	"timeblessed/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := store.OpenAndMigrate(store.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	app, err := Assemble(db, nil, config.API{
		InitialPassword: "letmein",
		JWT:             config.JWT{Secret: "test-secret", Issuer: "timeblessed", ExpMin: 5},
	})
	require.NoError(t, err)
	return app
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/login", "", dto.LoginRequest{Password: "letmein"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func intp(v int) *int { return &v }

func TestPingAndAuth(t *testing.T) {
	app := newTestApp(t)
	h := app.Router

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/restrictions", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/restrictions", "garbage", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/login", "", dto.LoginRequest{Password: "nope"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/login", "", map[string]string{}).Code)

	token := login(t, h)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/restrictions", token, nil).Code)
}

func TestRestrictionEndpoints(t *testing.T) {
	app := newTestApp(t)
	h := app.Router
	token := login(t, h)

	w := do(t, h, http.MethodGet, "/api/restrictions/org.example.unknown", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st service.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.False(t, st.Restricted)
	assert.True(t, st.Visible)

	w = do(t, h, http.MethodPut, "/api/restrictions/org.example.chat", token, dto.RestrictionRequest{AppName: "Chat", FromHour: intp(9), ToHour: intp(9), ToMinute: 30})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/restrictions/org.example.chat", token, map[string]any{"app_name": "Chat"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	label := "Team chat"
	w = do(t, h, http.MethodPut, "/api/restrictions/org.example.chat", token, dto.RestrictionRequest{AppName: "Chat", FromHour: intp(23), ToHour: intp(0), Label: &label})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.RestrictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsRestricted)
	assert.Equal(t, 23, resp.FromHour)
	assert.Equal(t, 0, resp.ToHour)
	assert.Equal(t, "11:00 PM - 12:00 AM", resp.Window)
	require.NotNil(t, resp.Label)
	assert.Equal(t, "Team chat", *resp.Label)

	w = do(t, h, http.MethodGet, "/api/restrictions", token, nil)
	var list []dto.RestrictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/restrictions/org.example.chat", token, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/restrictions", token, nil).Code)

	w = do(t, h, http.MethodGet, "/api/restrictions", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestFavoriteEndpoints(t *testing.T) {
	app := newTestApp(t)
	h := app.Router
	token := login(t, h)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/api/favorites/org.example.maps", token, dto.FavoriteRequest{AppName: "Maps"}).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/api/favorites/org.example.camera", token, nil).Code)

	w := do(t, h, http.MethodGet, "/api/favorites", token, nil)
	var favs []dto.FavoriteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	assert.Len(t, favs, 2)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/favorites/org.example.maps", token, nil).Code)
	w = do(t, h, http.MethodGet, "/api/favorites", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, "org.example.camera", favs[0].Package)
}

func TestPreferenceEndpoints(t *testing.T) {
	app := newTestApp(t)
	h := app.Router
	token := login(t, h)

	w := do(t, h, http.MethodGet, "/api/preferences/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var prefs store.NotificationPreferences
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.Equal(t, store.DefaultPreferences(), prefs)

	w = do(t, h, http.MethodPut, "/api/preferences/notifications", token, map[string]any{"quiet_hours_enabled": true, "quiet_hours_start": 21})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.True(t, prefs.QuietHoursEnabled)
	assert.Equal(t, 21, prefs.QuietHoursStart)
	assert.Equal(t, 7, prefs.QuietHoursEnd)
	assert.True(t, prefs.Enabled)

	w = do(t, h, http.MethodPut, "/api/preferences/notifications", token, map[string]any{"quiet_hours_end": 24})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword(t *testing.T) {
	app := newTestApp(t)
	h := app.Router
	token := login(t, h)

	w := do(t, h, http.MethodPut, "/api/password", token, dto.ChangePasswordRequest{Current: "wrong", New: "another-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, h, http.MethodPut, "/api/password", token, dto.ChangePasswordRequest{Current: "letmein", New: "another-one"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/login", "", dto.LoginRequest{Password: "letmein"}).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/login", "", dto.LoginRequest{Password: "another-one"}).Code)
}
