package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_Decode(t *testing.T) {
	var v struct {
		ID FlexID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": 14}`), &v))
	assert.Equal(t, FlexID("14"), v.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "7"}`), &v))
	assert.Equal(t, FlexID("7"), v.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": " 7 "}`), &v))
	assert.Equal(t, FlexID("7"), v.ID, "string ids are trimmed")

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &v))
	assert.Equal(t, FlexID(""), v.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": [1]}`), &v))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func TestBrands_FlatShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/brands", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":2,"name":"عجاوي","nameEnglish":"Ajjawi","imageUrl":"/img/2.png"}]`))
	})

	brands, err := client.Brands(context.Background())
	require.NoError(t, err)

	require.Len(t, brands, 1)
	assert.Equal(t, FlexID("2"), brands[0].ID)
	assert.Equal(t, "Ajjawi", brands[0].NameEnglish)
	assert.Nil(t, brands[0].Products)
}

func TestBrands_NestedProductsShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"2","name":"عجاوي","products":[{"id":10,"name":"Milk"}]}]`))
	})

	brands, err := client.Brands(context.Background())
	require.NoError(t, err)

	require.Len(t, brands, 1)
	require.Len(t, brands[0].Products, 1)
	assert.Equal(t, FlexID("10"), brands[0].Products[0].ID)
}

func TestProducts_FlatShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("brandId"))
		_, _ = w.Write([]byte(`[{"id":10,"brandId":2,"name":"Milk","unit":"كرتونة","categoryId":9,"productOrder":1}]`))
	})

	products, err := client.Products(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, FlexID("10"), p.ID)
	assert.Equal(t, FlexID("2"), p.BrandID)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, 9, *p.CategoryID)
	require.NotNil(t, p.ProductOrder)
	assert.Equal(t, 1, *p.ProductOrder)
}

func TestProducts_NestedBrandShapeIsFlattened(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":2,"name":"عجاوي","products":[{"id":10,"name":"Milk"},{"id":11,"name":"Juice","brandId":"3"}]},
			{"id":20,"brandId":4,"name":"Flat"}
		]`))
	})

	products, err := client.Products(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, FlexID("2"), products[0].BrandID, "nested product inherits envelope id")
	assert.Equal(t, FlexID("3"), products[1].BrandID, "explicit brand id wins")
	assert.Equal(t, "Flat", products[2].Name)
}

func TestProducts_BrandIDQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("brandId"))
		_, _ = w.Write([]byte(`[]`))
	})

	products, err := client.Products(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":9,"name":"زيوت"}]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 1)
	assert.Equal(t, 9, categories[0].ID)
}

func TestGet_HTTPErrorWithJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"backend exploded"}`))
	})

	_, err := client.Brands(context.Background())

	var ue *Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindHTTP, ue.Kind)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, "backend exploded", ue.Body["message"])
	assert.Contains(t, ue.Error(), "backend exploded")
}

func TestGet_HTTPErrorWithUnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>nope</html>`))
	})

	_, err := client.Brands(context.Background())

	var ue *Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindHTTP, ue.Kind)
	assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
	assert.Empty(t, ue.Body, "unparseable body degrades to an empty object")
}

func TestGet_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := New(srv.URL)

	_, err := client.Brands(context.Background())

	var ue *Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindNetwork, ue.Kind)
	assert.Equal(t, 0, ue.StatusCode)
}

func TestGet_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, WithTimeout(50*time.Millisecond))

	_, err := client.Brands(context.Background())

	var ue *Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindTimeout, ue.Kind)
	assert.Equal(t, http.StatusRequestTimeout, ue.StatusCode)
}

// memCache is a test Cache recording reads and writes.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[key]
	return b, ok
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.sets++
}

func TestGet_UsesCache(t *testing.T) {
	hits := 0
	store := newMemCache()
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[{"id":9,"name":"زيوت"}]`))
	}, WithCache(store, time.Minute))

	_, err := client.Categories(context.Background())
	require.NoError(t, err)
	_, err = client.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second fetch is served from cache")
	assert.Equal(t, 1, store.sets)
}

func TestGet_DoesNotCacheFailures(t *testing.T) {
	store := newMemCache()
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithCache(store, time.Minute))

	_, err := client.Categories(context.Background())
	require.Error(t, err)
	assert.Zero(t, store.sets)
}
