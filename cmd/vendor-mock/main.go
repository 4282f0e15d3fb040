// Command vendor-mock runs a deterministic stand-in for the real
// vendor APIs so the gateway can be exercised end-to-end without
// credentials: point every configured vendor's base_url at this server.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	m := newMock()

	mux := http.NewServeMux()

	// DeepL
	mux.HandleFunc("POST /v2/translate", m.handleDeepLTranslate)
	mux.HandleFunc("POST /v2/document", m.handleDeepLDocumentUpload)
	mux.HandleFunc("POST /v2/document/{id}", m.handleDeepLDocumentStatus)
	mux.HandleFunc("POST /v2/document/{id}/result", m.handleDeepLDocumentResult)

	// Google Cloud
	mux.HandleFunc("POST /v1/documents:analyzeEntities", m.handleGoogleEntities)
	mux.HandleFunc("POST /language/translate/v2", m.handleGoogleTranslate)

	// Mindee
	mux.HandleFunc("POST /v1/products/mindee/invoices/v4/predict", m.handleMindeeInvoice)
	mux.HandleFunc("POST /v1/products/mindee/international_id/v2/predict", m.handleMindeeIdentity)

	// AssemblyAI
	mux.HandleFunc("POST /v2/upload", m.handleAssemblyUpload)
	mux.HandleFunc("POST /v2/transcript", m.handleAssemblyLaunch)
	mux.HandleFunc("GET /v2/transcript/{id}", m.handleAssemblyResult)

	// api4ai
	mux.HandleFunc("POST /nsfw/v1/results", m.handleNSFW)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("vendor mock starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("vendor mock failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("vendor mock shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// mock tracks launched transcript jobs so the first poll reports
// processing and the second completes, exercising the pending path.
type mock struct {
	mu    sync.Mutex
	seq   int
	polls map[string]int
}

func newMock() *mock {
	return &mock{polls: make(map[string]int)}
}

func (m *mock) nextID(prefix string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (m *mock) handleDeepLTranslate(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	text := r.FormValue("text")
	writeJSON(w, map[string]any{
		"translations": []map[string]any{
			{"detected_source_language": "EN", "text": "[translated] " + text},
		},
	})
}

func (m *mock) handleDeepLDocumentUpload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"document_id":  m.nextID("doc"),
		"document_key": "key-0123456789",
	})
}

func (m *mock) handleDeepLDocumentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"document_id": r.PathValue("id"),
		"status":      "done",
	})
}

func (m *mock) handleDeepLDocumentResult(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write([]byte("translated document content"))
}

func (m *mock) handleGoogleEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"entities": []map[string]any{
			{"name": "Berlin", "type": "LOCATION", "salience": 0.82, "metadata": map[string]string{"wikipedia_url": "https://en.wikipedia.org/wiki/Berlin"}},
			{"name": "Ada Lovelace", "type": "PERSON", "salience": 0.18, "metadata": map[string]string{}},
		},
		"language": "en",
	})
}

func (m *mock) handleGoogleTranslate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Q []string `json:"q"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	text := ""
	if len(body.Q) > 0 {
		text = body.Q[0]
	}
	writeJSON(w, map[string]any{
		"data": map[string]any{
			"translations": []map[string]any{
				{"translatedText": "[translated] " + text},
			},
		},
	})
}

func (m *mock) handleMindeeInvoice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"api_request": map[string]any{"status": "success"},
		"document": map[string]any{
			"inference": map[string]any{
				"prediction": map[string]any{
					"supplier_name":    map[string]any{"value": "ACME GmbH", "confidence": 0.98},
					"customer_name":    map[string]any{"value": "Jean Dupont", "confidence": 0.95},
					"invoice_number":   map[string]any{"value": "INV-001", "confidence": 0.99},
					"date":             map[string]any{"value": "2024-03-01", "confidence": 0.97},
					"due_date":         map[string]any{"value": "2024-03-31", "confidence": 0.92},
					"total_amount":     map[string]any{"value": 119.0, "confidence": 0.99},
					"total_net":        map[string]any{"value": 100.0, "confidence": 0.99},
					"total_tax":        map[string]any{"value": 19.0, "confidence": 0.99},
					"locale":           map[string]any{"currency": "EUR", "language": "de"},
					"taxes":            []map[string]any{{"value": 19.0, "rate": 19.0}},
					"line_items": []map[string]any{
						{"description": "Widget", "quantity": 2.0, "unit_price": 50.0, "total_amount": 100.0},
					},
					"supplier_company_registrations": []map[string]any{},
					"supplier_payment_details":       []map[string]any{},
				},
			},
		},
	})
}

func (m *mock) handleMindeeIdentity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"api_request": map[string]any{"status": "success"},
		"document": map[string]any{
			"inference": map[string]any{
				"prediction": map[string]any{
					"surnames":          []map[string]any{{"value": "Dupont", "confidence": 0.98}},
					"given_names":       []map[string]any{{"value": "jean", "confidence": 0.97}},
					"birth_date":        map[string]any{"value": "1990-05-12", "confidence": 0.96},
					"document_number":   map[string]any{"value": "X4RTBPFW4", "confidence": 0.99},
					"expiry_date":       map[string]any{"value": "2030-05-11", "confidence": 0.95},
					"issue_date":        map[string]any{"value": "2020-05-12", "confidence": 0.95},
					"country_of_issue":  map[string]any{"value": "FRA", "confidence": 0.99},
					"nationality":       map[string]any{"value": "FRA", "confidence": 0.98},
					"sex":               map[string]any{"value": "M", "confidence": 0.97},
					"birth_place":       map[string]any{"value": "Paris", "confidence": 0.9},
					"document_type":     map[string]any{"value": "NATIONAL_ID_CARD", "confidence": 0.99},
					"mrz_line1":         map[string]any{"value": "IDFRADUPONT<<<<<<<<<<<<<<<<<<<<<<<", "confidence": 0.99},
					"mrz_line2":         map[string]any{"value": "9005123M3005112FRA<<<<<<<<<<<6", "confidence": 0.99},
				},
			},
		},
	})
}

func (m *mock) handleAssemblyUpload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"upload_url": "https://cdn.assemblyai.invalid/" + m.nextID("upload"),
	})
}

func (m *mock) handleAssemblyLaunch(w http.ResponseWriter, r *http.Request) {
	id := m.nextID("transcript")
	writeJSON(w, map[string]any{"id": id, "status": "queued"})
}

func (m *mock) handleAssemblyResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	m.mu.Lock()
	m.polls[id]++
	polls := m.polls[id]
	m.mu.Unlock()

	if polls < 2 {
		writeJSON(w, map[string]any{"id": id, "status": "processing"})
		return
	}

	conf := 0.94
	writeJSON(w, map[string]any{
		"id":     id,
		"status": "completed",
		"text":   "hello and welcome to the show",
		"utterances": []map[string]any{
			{
				"speaker": "A",
				"words": []map[string]any{
					{"text": "hello", "start": 120.0, "end": 480.0, "confidence": conf},
					{"text": "and", "start": 520.0, "end": 640.0, "confidence": conf},
				},
			},
			{
				"speaker": "B",
				"words": []map[string]any{
					{"text": "welcome", "start": 900.0, "end": 1300.0, "confidence": conf},
				},
			},
		},
	})
}

func (m *mock) handleNSFW(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"results": []map[string]any{
			{
				"status": map[string]any{"code": "ok", "message": ""},
				"entities": []map[string]any{
					{"classes": map[string]float64{"nsfw": 0.03, "sfw": 0.97}},
				},
			},
		},
	})
}
