package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vadimgribanov.com/holomentor/internal/database"
	"vadimgribanov.com/holomentor/internal/models"
	"vadimgribanov.com/holomentor/internal/repositories"
	"vadimgribanov.com/holomentor/internal/services"
)

func newMemoryRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	svc := services.NewMemoryService(repositories.NewInteractionRepo(db))
	return NewMemoryRouter(NewMemoryHandler(svc, 10, 20))
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestSaveInteractionAndGetMemory(t *testing.T) {
	r := newMemoryRouter(t)

	resp := doJSON(t, r, http.MethodPost, "/save_interaction", models.SaveInteractionRequest{
		UserID: "Ali", Question: "What is Go?", Answer: "A language.", Timestamp: "2024-05-01T10:00:00",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	status := decode[models.StatusResponse](t, resp)
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "Interaction saved", status.Message)

	resp = doJSON(t, r, http.MethodPost, "/save_interaction", models.SaveInteractionRequest{
		UserID: "Ali", Question: "Who made it?", Answer: "Google.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, r, http.MethodGet, "/get_memory/Ali", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	memory := decode[models.Memory](t, resp)
	assert.Equal(t, int64(2), memory.TotalInteractions)
	require.Len(t, memory.RecentInteractions, 2)
	assert.Equal(t, "Who made it?", memory.RecentInteractions[0].Question)

	resp = doJSON(t, r, http.MethodGet, "/get_memory/Ali?limit=1", nil)
	assert.Len(t, decode[models.Memory](t, resp).RecentInteractions, 1)

	resp = doJSON(t, r, http.MethodGet, "/get_memory/Ali?limit=0", nil)
	assert.Contains(t, resp.Body.String(), `"recent_interactions":[]`)

	resp = doJSON(t, r, http.MethodGet, "/get_memory/Ali?limit=lots", nil)
	assert.Len(t, decode[models.Memory](t, resp).RecentInteractions, 2)
}

func TestGetMemoryUnknownUser(t *testing.T) {
	r := newMemoryRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/get_memory/nobody", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"user_id":"nobody"`)
	assert.Contains(t, body, `"first_seen":null`)
	assert.Contains(t, body, `"total_interactions":0`)
	assert.Contains(t, body, `"recent_interactions":[]`)
	assert.NotContains(t, body, `"error"`)
}

func TestSaveInteractionValidation(t *testing.T) {
	r := newMemoryRouter(t)

	cases := map[string]any{
		"missing answer": models.SaveInteractionRequest{UserID: "Ali", Question: "q"},
		"bad json":       "{not json",
		"bad timestamp":  models.SaveInteractionRequest{UserID: "Ali", Question: "q", Answer: "a", Timestamp: "whenever you like"},
		"zero timestamp": models.SaveInteractionRequest{UserID: "Ali", Question: "q", Answer: "a", Timestamp: "0001-01-01T00:00:00Z"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, r, http.MethodPost, "/save_interaction", body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.NotEmpty(t, decode[models.ErrorResponse](t, resp).Error)
		})
	}

	resp := doJSON(t, r, http.MethodGet, "/users", nil)
	assert.Equal(t, `{"users":[]}`+"\n", resp.Body.String())
}

func TestUsersAndSearch(t *testing.T) {
	r := newMemoryRouter(t)
	for _, req := range []models.SaveInteractionRequest{
		{UserID: "Ali", Question: "Tell me about channels", Answer: "They pass values."},
		{UserID: "Sam", Question: "Best pizza?", Answer: "Margherita."},
	} {
		require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/save_interaction", req).Code)
	}

	users := decode[models.UsersResponse](t, doJSON(t, r, http.MethodGet, "/users", nil))
	assert.Len(t, users.Users, 2)

	resp := doJSON(t, r, http.MethodGet, "/search?q=CHANNEL", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	results := decode[models.SearchResponse](t, resp)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "Ali", results.Results[0].UserID)

	resp = doJSON(t, r, http.MethodGet, "/search?q=sushi", nil)
	assert.Equal(t, `{"results":[]}`+"\n", resp.Body.String())

	for _, target := range []string{"/search?q=channels&limit=0", "/search?q=channels&limit=-3"} {
		resp = doJSON(t, r, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, resp.Code, target)
		assert.Equal(t, `{"results":[]}`+"\n", resp.Body.String(), target)
	}

	resp = doJSON(t, r, http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "No search query provided", decode[models.ErrorResponse](t, resp).Error)
}

func TestMemoryHealth(t *testing.T) {
	r := newMemoryRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["agent"])
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}
