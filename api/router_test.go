package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vr33ni-dev/mystic-cards-api/deck"
	"github.com/vr33ni-dev/mystic-cards-api/diag"
)

var seedNames = []string{"The Fool", "The Magician", "The High Priestess", "The Empress", "The Sun"}

type stubHandle struct {
	names []string
	err   error
}

func (s stubHandle) Name() string { return "stub" }

func (s stubHandle) ListCollectionNames(context.Context) ([]string, error) {
	return s.names, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setupTestRouter(t *testing.T, d deck.Deck, c diag.Capability, env map[string]string) http.Handler {
	t.Helper()
	log := quietLogger()
	getenv := func(k string) string { return env[k] }
	return NewRouter(&Handler{
		Deck:   d,
		Prober: diag.NewProber(c, diag.WithGetenv(getenv), diag.WithLogger(log)),
		Log:    log,
	})
}

func doRequest(t *testing.T, h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestStatusAndHealth(t *testing.T) {
	r := setupTestRouter(t, deck.Standard(), diag.Absent(), nil)

	tests := []struct {
		path string
		want string
	}{
		{"/", `{"status":"ok","service":"mystic-cards-api"}`},
		{"/health", `{"ok":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				rec := doRequest(t, r, http.MethodGet, tt.path, nil)
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.JSONEq(t, tt.want, rec.Body.String())
			}
		})
	}
}

func TestDrawOne(t *testing.T) {
	r := setupTestRouter(t, deck.Standard(), diag.Absent(), nil)

	for i := 0; i < 50; i++ {
		rec := doRequest(t, r, http.MethodGet, "/reading/one", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Len(t, body, 3)
		assert.Contains(t, body, "name")
		assert.Contains(t, body, "upright_meaning")
		assert.Contains(t, body, "reversed_meaning")
		assert.Contains(t, seedNames, body["name"])
	}
}

func TestDrawOneNullMeanings(t *testing.T) {
	r := setupTestRouter(t, deck.New(deck.Card{Name: "Blank"}), diag.Absent(), nil)

	rec := doRequest(t, r, http.MethodGet, "/reading/one", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Blank","upright_meaning":null,"reversed_meaning":null}`, rec.Body.String())
}

func TestDrawOneEmptyDeck(t *testing.T) {
	r := setupTestRouter(t, deck.New(), diag.Absent(), nil)

	rec := doRequest(t, r, http.MethodGet, "/reading/one", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), deck.ErrEmptyDeck.Error())
}

func TestDiagnosticsAbsent(t *testing.T) {
	r := setupTestRouter(t, deck.Standard(), diag.Absent(), nil)

	rec := doRequest(t, r, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Running", body["backend"])
	assert.Contains(t, body["database"], "module not found")
	assert.Equal(t, "Not Set", body["database_url"])
	assert.Equal(t, "Not Set", body["database_name"])
	assert.Equal(t, "Not Connected", body["connection_status"])
	assert.Equal(t, []any{}, body["collections"])
}

func TestDiagnosticsReady(t *testing.T) {
	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	env := map[string]string{"DATABASE_URL": "postgres://x"}
	r := setupTestRouter(t, deck.Standard(), diag.Ready(stubHandle{names: names}), env)

	rec := doRequest(t, r, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Connected & Working", body["database"])
	assert.Equal(t, "Connected", body["connection_status"])
	assert.Equal(t, "Set", body["database_url"])
	assert.Equal(t, "Not Set", body["database_name"])
	assert.Equal(t, []any{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, body["collections"])
}

func TestDiagnosticsEnumerationFailureIs200(t *testing.T) {
	msg := strings.Repeat("z", 60)
	r := setupTestRouter(t, deck.Standard(), diag.Ready(stubHandle{err: errors.New(msg)}), nil)

	rec := doRequest(t, r, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Connected but Error: "+strings.Repeat("z", 50), body["database"])
	assert.Equal(t, []any{}, body["collections"])
}

func TestDiagnosticsWithoutProber(t *testing.T) {
	r := NewRouter(&Handler{Deck: deck.Standard(), Log: quietLogger()})

	rec := doRequest(t, r, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["database"], "module not found")
}

func TestCORS(t *testing.T) {
	r := setupTestRouter(t, deck.Standard(), diag.Absent(), nil)
	origin := "https://example.com"

	t.Run("simple request", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/health", map[string]string{
			"Origin": origin,
			"Cookie": "session=abc",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodOptions, "/reading/one", map[string]string{
			"Origin":                         origin,
			"Access-Control-Request-Method":  http.MethodGet,
			"Access-Control-Request-Headers": "X-Custom-Header",
		})
		assert.Less(t, rec.Code, 300)
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight for uncommon method", func(t *testing.T) {
		for _, method := range []string{"PROPFIND", http.MethodDelete, http.MethodTrace} {
			rec := doRequest(t, r, http.MethodOptions, "/reading/one", map[string]string{
				"Origin":                        "https://other.example",
				"Access-Control-Request-Method": method,
			})
			assert.Less(t, rec.Code, 300, method)
			assert.Equal(t, "https://other.example", rec.Header().Get("Access-Control-Allow-Origin"), method)
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), method)
		}
	})
}

func TestUnknownRoute(t *testing.T) {
	r := setupTestRouter(t, deck.Standard(), diag.Absent(), nil)

	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/reading/three", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, r, http.MethodPost, "/reading/one", nil).Code)
}
