package product_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revas/exchange-api/internal/model"
	"revas/exchange-api/internal/testutil"
)

func do(router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validListing() map[string]any {
	return map[string]any{
		"volume":        "200 tonnes",
		"duration":      "6 months",
		"price":         310.50,
		"destination":   "Rotterdam",
		"paymentTerms":  "Net 30",
		"shippingTerms": "FOB",
		"location":      "Lagos",
	}
}

func TestProductLifecycle(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	owner := testutil.CreateUser(t, d, "owner@x.com", "longpass1", true)
	ck := testutil.AccessCookie(t, d, owner.ID)

	// Create
	w := do(router, http.MethodPost, "/api/products/product", validListing(), ck)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, owner.ID, created.UserID)

	// Fetch by id, no auth needed for reads
	w = do(router, http.MethodGet, "/api/products/product?product_id="+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/products/product?product_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Edit
	w = do(router, http.MethodPatch, "/api/products/product?product_id="+created.ID,
		map[string]any{"price": 999.0}, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded model.Product
	require.NoError(t, d.DB.Where("id = ?", created.ID).First(&reloaded).Error)
	assert.Equal(t, float64(999), reloaded.Price)
	assert.Equal(t, "Rotterdam", reloaded.Destination)

	// Delete
	w = do(router, http.MethodDelete, "/api/products/product?product_id="+created.ID, nil, ck)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, "/api/products/product?product_id="+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductOwnershipEnforced(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	owner := testutil.CreateUser(t, d, "owner@x.com", "longpass1", true)
	other := testutil.CreateUser(t, d, "other@x.com", "longpass1", true)

	w := do(router, http.MethodPost, "/api/products/product", validListing(),
		testutil.AccessCookie(t, d, owner.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	otherCk := testutil.AccessCookie(t, d, other.ID)

	w = do(router, http.MethodPatch, "/api/products/product?product_id="+created.ID,
		map[string]any{"price": 1.0}, otherCk)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(router, http.MethodDelete, "/api/products/product?product_id="+created.ID, nil, otherCk)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Untouched
	var reloaded model.Product
	require.NoError(t, d.DB.Where("id = ?", created.ID).First(&reloaded).Error)
	assert.Equal(t, created.Price, reloaded.Price)
}

func TestProductListAll(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	owner := testutil.CreateUser(t, d, "owner@x.com", "longpass1", true)
	ck := testutil.AccessCookie(t, d, owner.ID)

	for i := 0; i < 3; i++ {
		w := do(router, http.MethodPost, "/api/products/product", validListing(), ck)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(router, http.MethodGet, "/api/products/all-product", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 3)
}

func TestProductCatalog(t *testing.T) {
	router, d, _ := testutil.NewServer(t)

	for _, name := range []string{"PET flakes", "HDPE pellets"} {
		require.NoError(t, d.DB.Create(&model.CatalogProduct{
			ID:          uuid.NewString(),
			Name:        name,
			Description: name + " description",
		}).Error)
	}

	w := do(router, http.MethodGet, "/api/products/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog []model.CatalogProduct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	require.Len(t, catalog, 2)
	assert.Equal(t, "HDPE pellets", catalog[0].Name)
}

func TestProductCreateRequiresAuth(t *testing.T) {
	router, _, _ := testutil.NewServer(t)

	w := do(router, http.MethodPost, "/api/products/product", validListing())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
