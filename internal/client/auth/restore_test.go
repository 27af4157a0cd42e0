package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// TestRestoredSession_ListWithoutRelogin: после рестарта на диске лежит
// только refresh token; первый же запрос списка выменивает access и
// проходит без повторного login
func TestRestoredSession_ListWithoutRelogin(t *testing.T) {
	var refreshCalls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token/refresh/":
			refreshCalls.Add(1)

			var req pkgapi.TokenRefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "persisted-refresh", req.Refresh)

			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(pkgapi.TokenRefresh{Access: "minted-access"})

		case "/api/notes/":
			if r.Header.Get("Authorization") != "Bearer minted-access" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{
					Type:   "client_error",
					Errors: []pkgapi.FieldError{{Code: "not_authenticated", Detail: "Authentication credentials were not provided."}},
				})
				return
			}

			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(pkgapi.NotePage{
				Count:   1,
				Results: []pkgapi.Note{{ID: 1, Title: "restored"}},
			})

		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	// Состояние после рестарта: персистентный refresh, access потерян
	mem := &memTokenStorage{token: "persisted-refresh", present: true}
	store, err := NewStore(ctx, mem, nil)
	require.NoError(t, err)
	require.Empty(t, store.Access())

	client := api.NewClient(server.URL, store, nil)

	page, err := client.ListNotes(ctx, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, int64(1), refreshCalls.Load())

	// Выменянный access остался в памяти, refresh на диске не изменился
	assert.Equal(t, "minted-access", store.Access())
	assert.Equal(t, "persisted-refresh", mem.token)
}
