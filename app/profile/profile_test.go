package profile_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revas/exchange-api/internal/model"
	"revas/exchange-api/internal/testutil"
)

func do(router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validProfile() map[string]any {
	return map[string]any{
		"countryId":       "country-1",
		"stateId":         "state-1",
		"factoryCapacity": 1200.5,
		"products":        "PET, HDPE",
	}
}

func TestProfileLifecycle(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	user := testutil.CreateUser(t, d, "a@x.com", "longpass1", true)
	ck := testutil.AccessCookie(t, d, user.ID)

	// Nothing to fetch yet
	w := do(router, http.MethodGet, "/api/profile/get-profile", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Create
	w = do(router, http.MethodPost, "/api/profile/create-profile", validProfile(), ck)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, user.ID, created.UserID)
	assert.NotEmpty(t, created.ID)

	// One profile per user
	w = do(router, http.MethodPost, "/api/profile/create-profile", validProfile(), ck)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Fetch
	w = do(router, http.MethodGet, "/api/profile/get-profile", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	// Partial edit leaves the other fields alone
	w = do(router, http.MethodPatch, "/api/profile/edit-profile", map[string]any{"factoryCapacity": 2000}, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var edited model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edited))
	assert.Equal(t, float64(2000), edited.FactoryCapacity)
	assert.Equal(t, "PET, HDPE", edited.Products)

	// Delete
	w = do(router, http.MethodDelete, "/api/profile/delete-profile", nil, ck)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, "/api/profile/get-profile", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodDelete, "/api/profile/delete-profile", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileValidation(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	user := testutil.CreateUser(t, d, "a@x.com", "longpass1", true)
	ck := testutil.AccessCookie(t, d, user.ID)

	body := validProfile()
	body["factoryCapacity"] = 0

	w := do(router, http.MethodPost, "/api/profile/create-profile", body, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPatch, "/api/profile/edit-profile", map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRequiresAuth(t *testing.T) {
	router, _, _ := testutil.NewServer(t)

	w := do(router, http.MethodGet, "/api/profile/get-profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/api/profile/create-profile", validProfile())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRejectsStaleToken(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	user := testutil.CreateUser(t, d, "a@x.com", "longpass1", true)
	ck := testutil.AccessCookie(t, d, user.ID)

	require.NoError(t, d.DB.Delete(&model.User{}, "id = ?", user.ID).Error)

	w := do(router, http.MethodGet, "/api/profile/get-profile", nil, ck)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user_not_found")
}
