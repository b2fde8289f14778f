package location_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/internal/testutil"
)

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, d *internal.Deps) (nigeria, ghana model.Country) {
	t.Helper()

	nigeria = model.Country{ID: uuid.NewString(), Name: "Nigeria", Alpha2: "NG", Alpha3: "NGA"}
	ghana = model.Country{ID: uuid.NewString(), Name: "Ghana", Alpha2: "GH", Alpha3: "GHA"}
	require.NoError(t, d.DB.Create(&nigeria).Error)
	require.NoError(t, d.DB.Create(&ghana).Error)

	for _, name := range []string{"Lagos", "Kano"} {
		require.NoError(t, d.DB.Create(&model.State{
			ID:        uuid.NewString(),
			Name:      name,
			CountryID: nigeria.ID,
		}).Error)
	}

	require.NoError(t, d.DB.Create(&model.State{
		ID:        uuid.NewString(),
		Name:      "Accra",
		CountryID: ghana.ID,
	}).Error)

	return nigeria, ghana
}

func TestCountries(t *testing.T) {
	router, d, _ := testutil.NewServer(t)
	seed(t, d)

	w := get(router, "/api/location/countries")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), "Nigeria")
	assert.Contains(t, w.Body.String(), "Ghana")
}

func TestStatesFilteredByCountry(t *testing.T) {
	router, d, _ := testutil.NewServer(t)
	nigeria, _ := seed(t, d)

	w := get(router, "/api/location/states?country_id="+nigeria.ID)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), "Lagos")
	assert.Contains(t, w.Body.String(), "Kano")
	assert.NotContains(t, w.Body.String(), "Accra")
}

func TestStatesRequiresCountryID(t *testing.T) {
	router, _, _ := testutil.NewServer(t)

	w := get(router, "/api/location/states")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
