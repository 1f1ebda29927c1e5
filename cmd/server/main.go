// Command server exposes a paradigma analyzer as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/analyze?form=<word>
//	POST /api/analyze/text   body: {"text":"..."}
//	GET  /api/models
//	GET  /api/inflection?model=<name>
//	GET  /metrics
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cours-de-latin/paradigma"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// ---- metrics ------------------------------------------------------------

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paradigma_requests_total",
		Help: "Total API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paradigma_analyze_duration_seconds",
		Help:    "Transducer lookup duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paradigma_cache_lookups_total",
		Help: "Analysis cache lookups by result",
	}, []string{"result"})
)

// ---- JSON response types ------------------------------------------------

type analysisJSON struct {
	Lemma string   `json:"lemma"`
	Tags  []string `json:"tags"`
}

type analyzeWordResponse struct {
	Form     string         `json:"form"`
	Analyses []analysisJSON `json:"analyses"`
}

type tokenResultJSON struct {
	Token    string         `json:"token"`
	Analyses []analysisJSON `json:"analyses"`
}

type analyzeTextResponse struct {
	Results []tokenResultJSON `json:"results"`
}

type slotJSON struct {
	Openness float64 `json:"openness"`
	Pattern  string  `json:"pattern"`
}

type modelJSON struct {
	Name    string     `json:"name"`
	Stems   int        `json:"stems"`
	Affixes int        `json:"affixes"`
	Slots   []slotJSON `json:"slots"`
}

type modelsResponse struct {
	Models []modelJSON `json:"models"`
}

type tableJSON struct {
	Lemma string            `json:"lemma"`
	Forms map[string]string `json:"forms"`
}

type inflectionResponse struct {
	Model  string      `json:"model"`
	Tables []tableJSON `json:"tables"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toAnalysesJSON(analyses []paradigma.Analysis) []analysisJSON {
	out := make([]analysisJSON, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, analysisJSON{Lemma: a.Lemma, Tags: a.Grammeme.Tags()})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- server -------------------------------------------------------------

type server struct {
	an    *paradigma.Analyzer
	cache *lru.Cache[string, []analysisJSON]
}

func newServer(an *paradigma.Analyzer, cacheSize int) (*server, error) {
	cache, err := lru.New[string, []analysisJSON](cacheSize)
	if err != nil {
		return nil, err
	}
	return &server{an: an, cache: cache}, nil
}

// analyze returns the readings of form, from the cache when possible.
func (s *server) analyze(form string) []analysisJSON {
	key := paradigma.NormalizeForm(form)
	if out, ok := s.cache.Get(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return out
	}
	cacheLookups.WithLabelValues("miss").Inc()
	start := time.Now()
	out := toAnalysesJSON(s.an.AnalyzeWord(form))
	analyzeDuration.Observe(time.Since(start).Seconds())
	s.cache.Add(key, out)
	return out
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/text", s.handleAnalyzeText)
	mux.HandleFunc("/api/analyze", s.handleAnalyzeWord)
	mux.HandleFunc("/api/models", s.handleModels)
	mux.HandleFunc("/api/inflection", s.handleInflection)
	mux.Handle("/metrics", promhttp.Handler())
	return cors.Default().Handler(mux)
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleAnalyzeWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		requestsTotal.WithLabelValues("analyze", "405").Inc()
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	form := r.URL.Query().Get("form")
	if form == "" {
		requestsTotal.WithLabelValues("analyze", "400").Inc()
		writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
		return
	}

	analyses := s.analyze(form)
	status := http.StatusOK
	if len(analyses) == 0 {
		status = http.StatusNotFound
	}
	requestsTotal.WithLabelValues("analyze", fmt.Sprint(status)).Inc()
	writeJSON(w, status, analyzeWordResponse{Form: form, Analyses: analyses})
}

func (s *server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		requestsTotal.WithLabelValues("analyze_text", "405").Inc()
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		requestsTotal.WithLabelValues("analyze_text", "400").Inc()
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}

	results := s.an.AnalyzeText(body.Text)
	out := make([]tokenResultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, tokenResultJSON{Token: res.Token, Analyses: toAnalysesJSON(res.Analyses)})
	}
	requestsTotal.WithLabelValues("analyze_text", "200").Inc()
	writeJSON(w, http.StatusOK, analyzeTextResponse{Results: out})
}

func (s *server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		requestsTotal.WithLabelValues("models", "405").Inc()
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	models := s.an.Models()
	out := make([]modelJSON, 0, len(models))
	for _, m := range models {
		mj := modelJSON{Name: m.Name, Stems: m.Power(), Affixes: m.Size()}
		for _, sl := range m.Slots() {
			mj.Slots = append(mj.Slots, slotJSON{Openness: sl.Openness, Pattern: sl.Pattern.String()})
		}
		out = append(out, mj)
	}
	requestsTotal.WithLabelValues("models", "200").Inc()
	writeJSON(w, http.StatusOK, modelsResponse{Models: out})
}

func (s *server) handleInflection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		requestsTotal.WithLabelValues("inflection", "405").Inc()
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	name := r.URL.Query().Get("model")
	if name == "" {
		requestsTotal.WithLabelValues("inflection", "400").Inc()
		writeError(w, http.StatusBadRequest, "missing 'model' query parameter")
		return
	}
	for _, m := range s.an.Models() {
		if m.Name != name {
			continue
		}
		resp := inflectionResponse{Model: m.Name}
		for _, t := range m.InflectionTables() {
			tj := tableJSON{Lemma: paradigma.Remacronize(t.Lemma), Forms: make(map[string]string, len(t.Forms))}
			for _, f := range t.Forms {
				tj.Forms[f.Grammeme.String()] = paradigma.Remacronize(f.Form)
			}
			resp.Tables = append(resp.Tables, tj)
		}
		requestsTotal.WithLabelValues("inflection", "200").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	requestsTotal.WithLabelValues("inflection", "404").Inc()
	writeError(w, http.StatusNotFound, fmt.Sprintf("model %q not found", name))
}

// ---- main ---------------------------------------------------------------

// loadAnalyzer reads the models and the transducer from the store, or from
// the given files when set.
func loadAnalyzer(ctx context.Context, cfg paradigma.Config, transducerPath, modelsPath string) (*paradigma.Analyzer, error) {
	var (
		models []*paradigma.Model
		data   []byte
		err    error
	)
	if cfg.StoreDSN != "" {
		store, err := paradigma.OpenModelStore(cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if models, err = store.Load(ctx, cfg.Threshold); err != nil {
			return nil, err
		}
		if transducerPath == "" {
			if data, err = store.LoadTransducer(ctx); err != nil {
				return nil, err
			}
		}
	}
	if modelsPath != "" {
		f, err := os.Open(modelsPath)
		if err != nil {
			return nil, err
		}
		models, err = paradigma.ReadModels(f, cfg.Threshold)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	if transducerPath != "" {
		if data, err = os.ReadFile(transducerPath); err != nil {
			return nil, err
		}
	}
	if data == nil {
		return nil, errors.New("no transducer: set -transducer or -store")
	}
	return paradigma.LoadAnalyzer(data, models, cfg)
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	transducerPath := flag.String("transducer", "", "transducer file written by paradigma build")
	modelsPath := flag.String("models", "", "models file written by paradigma build")
	storeDSN := flag.String("store", "", "SQLite model store")
	cacheSize := flag.Int("cache", 4096, "number of analyzed forms kept in memory")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg := paradigma.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = paradigma.LoadConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *storeDSN != "" {
		cfg.StoreDSN = *storeDSN
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	log.Println("loading analyzer")
	an, err := loadAnalyzer(context.Background(), cfg, *transducerPath, *modelsPath)
	if err != nil {
		log.Fatalf("failed to load analyzer: %v", err)
	}
	log.Printf("analyzer loaded: %d models, %d states", len(an.Models()), an.Transducer().NumStates())

	srv, err := newServer(an, *cacheSize)
	if err != nil {
		log.Fatalf("failed to create cache: %v", err)
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
