package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cours-de-latin/paradigma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpus = "amo\tamare\t1|s\namas\tamare\t2|s\namat\tamare\t3|s\n\n" +
	"laudo\tlaudare\t1|s\nlaudas\tlaudare\t2|s\nlaudat\tlaudare\t3|s\n"

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := paradigma.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	groups, err := paradigma.ReadCorpus(strings.NewReader(corpus))
	require.NoError(t, err)
	b, err := paradigma.NewBuilder(cfg)
	require.NoError(t, err)
	an, err := b.Build(context.Background(), groups, nil)
	require.NoError(t, err)

	srv, err := newServer(an, 16)
	require.NoError(t, err)
	return srv.routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeWordEndpoint(t *testing.T) {
	h := testServer(t)

	for range 2 {
		rec := do(t, h, http.MethodGet, "/api/analyze?form=cantas", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp analyzeWordResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Analyses, 1)
		assert.Equal(t, "canto", resp.Analyses[0].Lemma)
		assert.Equal(t, []string{"2"}, resp.Analyses[0].Tags)
	}

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/analyze?form=xyz", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/analyze", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/api/analyze?form=amo", "").Code)
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	h := testServer(t)
	rec := do(t, h, http.MethodPost, "/api/analyze/text", `{"text":"amo et laudas"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeTextResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "laudas", resp.Results[2].Token)
	assert.Equal(t, "laudo", resp.Results[2].Analyses[0].Lemma)
	assert.Empty(t, resp.Results[1].Analyses)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/analyze/text", `{}`).Code)
}

func TestModelsEndpoint(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp modelsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Models, 1)
	assert.Equal(t, "amare", resp.Models[0].Name)
	assert.Equal(t, 2, resp.Models[0].Stems)
	assert.Equal(t, 3, resp.Models[0].Affixes)
	require.Len(t, resp.Models[0].Slots, 2)
	assert.Equal(t, ".", resp.Models[0].Slots[0].Pattern)
}

func TestInflectionEndpoint(t *testing.T) {
	h := testServer(t)
	rec := do(t, h, http.MethodGet, "/api/inflection?model=amare", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp inflectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Tables, 2)
	assert.Equal(t, "laudo", resp.Tables[1].Lemma)
	assert.Equal(t, "laudas", resp.Tables[1].Forms["s|2"])

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/inflection?model=esse", "").Code)
}

func TestMetricsAndCORS(t *testing.T) {
	h := testServer(t)
	do(t, h, http.MethodGet, "/api/analyze?form=amo", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "paradigma_requests_total")

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("Origin", "http://example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
