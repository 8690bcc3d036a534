package httpapi

import (
	"net/http"
	"testing"
)

func TestAnimeWritesRequireAdminRole(t *testing.T) {
	env := newTestAPI(t)
	userTok := env.userToken(t, "u1", "e1@x.com")

	resp := env.api.do(http.MethodPost, "/animes", map[string]any{"title": "Akira"}, userTok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("POST /animes as user: expected 403, got %d", resp.StatusCode)
	}

	// Reads stay open to any authenticated caller.
	resp = env.api.do(http.MethodGet, "/animes", nil, userTok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /animes as user: expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminAnimeCRUD(t *testing.T) {
	env := newTestAPI(t)
	adminTok := env.adminToken(t)

	resp := env.api.do(http.MethodPost, "/animes", map[string]any{
		"title": "Cowboy Bebop", "episodes": 26,
	}, adminTok)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /animes: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected generated id, got %v", body)
	}

	resp = env.api.do(http.MethodGet, "/animes/"+id, nil, adminTok)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /animes/{id}: expected 200, got %d", resp.StatusCode)
	}
	doc := decodeBody(t, resp)
	if doc["title"] != "Cowboy Bebop" {
		t.Fatalf("unexpected document: %v", doc)
	}

	resp = env.api.do(http.MethodPut, "/animes/"+id, map[string]any{"rating": 9}, adminTok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /animes/{id}: expected 200, got %d", resp.StatusCode)
	}

	resp = env.api.do(http.MethodGet, "/animes/"+id, nil, adminTok)
	doc = decodeBody(t, resp)
	if doc["rating"] != float64(9) || doc["title"] != "Cowboy Bebop" {
		t.Fatalf("update must merge fields, got %v", doc)
	}

	resp = env.api.do(http.MethodDelete, "/animes/"+id, nil, adminTok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE /animes/{id}: expected 200, got %d", resp.StatusCode)
	}

	resp = env.api.do(http.MethodGet, "/animes/"+id, nil, adminTok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET deleted document: expected 404, got %d", resp.StatusCode)
	}
}

func TestUserDocumentsOpenToAuthenticated(t *testing.T) {
	env := newTestAPI(t)
	userTok := env.userToken(t, "u1", "e1@x.com")

	resp := env.api.do(http.MethodPost, "/users", map[string]any{
		"name": "Spike", "favorite": "Cowboy Bebop",
	}, userTok)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /users: expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected generated id")
	}

	resp = env.api.do(http.MethodGet, "/users", nil, userTok)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /users: expected 200, got %d", resp.StatusCode)
	}
	list := decodeBody(t, resp)
	items, ok := list["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one item, got %v", list)
	}
}

func TestUnknownDocumentReturns404(t *testing.T) {
	env := newTestAPI(t)
	userTok := env.userToken(t, "u1", "e1@x.com")

	resp := env.api.do(http.MethodGet, "/users/does-not-exist", nil, userTok)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestInsertRejectsEmptyBody(t *testing.T) {
	env := newTestAPI(t)
	userTok := env.userToken(t, "u1", "e1@x.com")

	resp := env.api.do(http.MethodPost, "/users", map[string]any{}, userTok)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
