package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jiyath5516F/edenai-apis/pkg/asyncjob"
	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/observability"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
)

// FileUploader hosts raw file bytes and returns a URL a vendor can
// fetch. *upload.Uploader satisfies it.
type FileUploader interface {
	Upload(ctx context.Context, name string, content []byte) (string, error)
}

// AdapterConfig tunes the HTTP adapter.
type AdapterConfig struct {
	// MaxBodySize limits request bodies in bytes. Default: 10 MB.
	MaxBodySize int64

	// Poller drives server-side polling for ?wait=true result requests.
	Poller asyncjob.Poller
}

// Adapter exposes the unified API over HTTP. Routes follow the
// /v1/{feature}/{subfeature} layout; every request names the vendor to
// dispatch to in its body.
type Adapter struct {
	registry *provider.Registry
	store    storage.JobStore
	uploader FileUploader
	logger   *slog.Logger
	config   AdapterConfig
	mux      *http.ServeMux
}

// NewAdapter creates the adapter and registers its routes. uploader
// may be nil when file hosting is disabled.
func NewAdapter(registry *provider.Registry, store storage.JobStore, uploader FileUploader, logger *slog.Logger, config AdapterConfig) *Adapter {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = 10 * 1024 * 1024
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		registry: registry,
		store:    store,
		uploader: uploader,
		logger:   logger,
		config:   config,
		mux:      http.NewServeMux(),
	}

	a.mux.HandleFunc("POST /v1/translation/automatic_translation", a.handleAutomaticTranslation)
	a.mux.HandleFunc("POST /v1/translation/document_translation", a.handleDocumentTranslation)
	a.mux.HandleFunc("POST /v1/text/named_entity_recognition", a.handleNamedEntityRecognition)
	a.mux.HandleFunc("POST /v1/ocr/invoice_parser", a.handleInvoiceParser)
	a.mux.HandleFunc("POST /v1/ocr/identity_parser", a.handleIdentityParser)
	a.mux.HandleFunc("POST /v1/image/explicit_content", a.handleExplicitContent)
	a.mux.HandleFunc("POST /v1/audio/speech_to_text_async", a.handleSpeechLaunch)
	a.mux.HandleFunc("GET /v1/audio/speech_to_text_async/{job_id}", a.handleSpeechResult)
	a.mux.HandleFunc("GET /v1/jobs", a.handleListJobs)
	a.mux.HandleFunc("GET /v1/providers", a.handleListProviders)
	a.mux.HandleFunc("GET /healthz", a.handleHealth)

	return a
}

// ServeHTTP implements http.Handler.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *Adapter) handleAutomaticTranslation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
		canonical.TranslationRequest
	}
	if err := a.decodeJSON(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.AutomaticTranslator(body.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	start := time.Now()
	resp, err := vendor.AutomaticTranslation(r.Context(), &body.TranslationRequest)
	observability.ObserveVendorCall(body.Provider, "translation", "automatic_translation", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleDocumentTranslation(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseFileRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.DocumentTranslator(form.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	req := &canonical.DocumentTranslationRequest{
		File:           form.File,
		SourceLanguage: form.SourceLanguage,
		TargetLanguage: form.TargetLanguage,
	}
	start := time.Now()
	resp, err := vendor.DocumentTranslation(r.Context(), req)
	observability.ObserveVendorCall(form.Provider, "translation", "document_translation", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleNamedEntityRecognition(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
		canonical.TextRequest
	}
	if err := a.decodeJSON(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.EntityRecognizer(body.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	start := time.Now()
	resp, err := vendor.NamedEntityRecognition(r.Context(), &body.TextRequest)
	observability.ObserveVendorCall(body.Provider, "text", "named_entity_recognition", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleInvoiceParser(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseFileRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.InvoiceParser(form.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	req := &canonical.OCRRequest{File: form.File, Language: form.Language}
	start := time.Now()
	resp, err := vendor.ParseInvoice(r.Context(), req)
	observability.ObserveVendorCall(form.Provider, "ocr", "invoice_parser", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleIdentityParser(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseFileRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.IdentityParser(form.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	req := &canonical.OCRRequest{File: form.File, Language: form.Language}
	start := time.Now()
	resp, err := vendor.ParseIdentity(r.Context(), req)
	observability.ObserveVendorCall(form.Provider, "ocr", "identity_parser", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) handleExplicitContent(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseFileRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.ExplicitContentDetector(form.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	req := &canonical.ImageRequest{File: form.File}
	start := time.Now()
	resp, err := vendor.DetectExplicitContent(r.Context(), req)
	observability.ObserveVendorCall(form.Provider, "image", "explicit_content", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// launchResponse acknowledges an accepted asynchronous job.
type launchResponse struct {
	JobID         string              `json:"job_id"`
	ProviderJobID string              `json:"provider_job_id"`
	Status        canonical.JobStatus `json:"status"`
}

func (a *Adapter) handleSpeechLaunch(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseFileRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	vendor, err := a.registry.SpeechToTextProvider(form.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	req := &canonical.SpeechRequest{
		File:            form.File,
		Language:        form.Language,
		Speakers:        form.Speakers,
		ProfanityFilter: form.ProfanityFilter,
		Vocabulary:      form.Vocabulary,
	}

	// Vendors that can only fetch audio by URL get the raw bytes hosted
	// first when an uploader is configured.
	if req.File.URL == "" && len(req.File.Content) > 0 && a.uploader != nil {
		url, err := a.uploader.Upload(r.Context(), req.File.Name, req.File.Content)
		if err != nil {
			observability.UploadsTotal.WithLabelValues("error").Inc()
			WriteError(w, err)
			return
		}
		observability.UploadsTotal.WithLabelValues("ok").Inc()
		req.File.URL = url
		req.File.Content = nil
	}

	start := time.Now()
	providerJobID, err := vendor.LaunchSpeechToText(r.Context(), req)
	observability.ObserveVendorCall(form.Provider, "audio", "speech_to_text_async", time.Since(start).Seconds(), err)
	if err != nil {
		WriteError(w, err)
		return
	}

	now := time.Now().UTC()
	job := &storage.Job{
		ID:            uuid.NewString(),
		Provider:      form.Provider,
		Feature:       "audio",
		Subfeature:    "speech_to_text_async",
		ProviderJobID: providerJobID,
		Status:        canonical.JobPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.store.SaveJob(r.Context(), job); err != nil {
		WriteError(w, err)
		return
	}
	observability.AsyncJobsActive.Inc()

	writeJSON(w, http.StatusOK, launchResponse{
		JobID:         job.ID,
		ProviderJobID: providerJobID,
		Status:        canonical.JobPending,
	})
}

func (a *Adapter) handleSpeechResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	job, err := a.store.GetJob(ctx, r.PathValue("job_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	// Terminal results are served from storage without another vendor
	// round trip.
	if job.Status != canonical.JobPending && len(job.Result) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.Write(job.Result)
		return
	}

	vendor, err := a.registry.SpeechToTextProvider(job.Provider)
	if err != nil {
		WriteError(w, canonical.NewInvalidInputError("provider", err.Error()))
		return
	}

	var resp *canonical.AsyncResponse[canonical.SpeechToText]
	check := func(ctx context.Context) (asyncjob.Status, error) {
		start := time.Now()
		got, err := vendor.SpeechToTextResult(ctx, job.ProviderJobID)
		observability.ObserveVendorCall(job.Provider, "audio", "speech_to_text_async", time.Since(start).Seconds(), err)
		if err != nil {
			return asyncjob.Pending, err
		}
		resp = got
		switch got.Status {
		case canonical.JobSucceeded:
			return asyncjob.Done, nil
		case canonical.JobFailed:
			return asyncjob.Failed, nil
		default:
			return asyncjob.Pending, nil
		}
	}

	if r.URL.Query().Get("wait") == "true" {
		pollErr := a.config.Poller.Poll(ctx, check)
		if resp == nil {
			WriteError(w, pollErr)
			return
		}
		// A poll timeout leaves the last observed pending response in
		// resp; vendor job failures are reported in the response body.
	} else {
		if _, err := check(ctx); err != nil {
			WriteError(w, err)
			return
		}
	}

	if resp.Status != canonical.JobPending {
		a.persistResult(ctx, job, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *Adapter) persistResult(ctx context.Context, job *storage.Job, resp *canonical.AsyncResponse[canonical.SpeechToText]) {
	result, err := json.Marshal(resp)
	if err != nil {
		a.logger.Warn("marshal job result", "job_id", job.ID, "error", err)
		return
	}
	job.Status = resp.Status
	job.Error = resp.Error
	job.Result = result
	job.UpdatedAt = time.Now().UTC()
	if err := a.store.UpdateJob(ctx, job); err != nil {
		a.logger.Warn("persist job result", "job_id", job.ID, "error", err)
		return
	}
	observability.AsyncJobsActive.Dec()
}

// jobView is the listing representation of a job; the stored result
// payload is only served from the job's own result endpoint.
type jobView struct {
	JobID      string              `json:"job_id"`
	Provider   string              `json:"provider"`
	Feature    string              `json:"feature"`
	Subfeature string              `json:"subfeature"`
	Status     canonical.JobStatus `json:"status"`
	Error      string              `json:"error,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func (a *Adapter) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, canonical.NewInvalidInputError("limit", "limit must be a positive integer"))
			return
		}
		limit = n
	}

	jobs, err := a.store.ListJobs(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	views := make([]jobView, len(jobs))
	for i, job := range jobs {
		views[i] = jobView{
			JobID:      job.ID,
			Provider:   job.Provider,
			Feature:    job.Feature,
			Subfeature: job.Subfeature,
			Status:     job.Status,
			Error:      job.Error,
			CreatedAt:  job.CreatedAt,
			UpdatedAt:  job.UpdatedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": views})
}

func (a *Adapter) handleListProviders(w http.ResponseWriter, r *http.Request) {
	capabilities := make(map[string][]string)
	for _, sf := range provider.Subfeatures() {
		capabilities[sf.String()] = a.registry.Vendors(sf)
	}
	writeJSON(w, http.StatusOK, map[string]any{"capabilities": capabilities})
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.store.HealthCheck(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fileRequest is the decoded input of a file-consuming endpoint,
// accepted either as multipart form data with a "file" part or as JSON
// with a "file_url" the vendor can fetch.
type fileRequest struct {
	Provider        string
	File            canonical.FileInput
	SourceLanguage  string
	TargetLanguage  string
	Language        string
	Speakers        int
	ProfanityFilter bool
	Vocabulary      []string
}

func (a *Adapter) parseFileRequest(w http.ResponseWriter, r *http.Request) (*fileRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return a.parseMultipart(r)
	}

	var body struct {
		Provider        string   `json:"provider"`
		FileURL         string   `json:"file_url"`
		SourceLanguage  string   `json:"source_language"`
		TargetLanguage  string   `json:"target_language"`
		Language        string   `json:"language"`
		Speakers        int      `json:"speakers"`
		ProfanityFilter bool     `json:"profanity_filter"`
		Vocabulary      []string `json:"vocabulary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, canonical.NewInvalidInputError("body", "invalid JSON body: "+err.Error())
	}
	return &fileRequest{
		Provider:        body.Provider,
		File:            canonical.FileInput{URL: body.FileURL},
		SourceLanguage:  body.SourceLanguage,
		TargetLanguage:  body.TargetLanguage,
		Language:        body.Language,
		Speakers:        body.Speakers,
		ProfanityFilter: body.ProfanityFilter,
		Vocabulary:      body.Vocabulary,
	}, nil
}

func (a *Adapter) parseMultipart(r *http.Request) (*fileRequest, error) {
	if err := r.ParseMultipartForm(a.config.MaxBodySize); err != nil {
		return nil, canonical.NewInvalidInputError("body", "invalid multipart form: "+err.Error())
	}

	out := &fileRequest{
		Provider:       r.FormValue("provider"),
		SourceLanguage: r.FormValue("source_language"),
		TargetLanguage: r.FormValue("target_language"),
		Language:       r.FormValue("language"),
	}
	if raw := r.FormValue("speakers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, canonical.NewInvalidInputError("speakers", "speakers must be an integer")
		}
		out.Speakers = n
	}
	if raw := r.FormValue("profanity_filter"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, canonical.NewInvalidInputError("profanity_filter", "profanity_filter must be a boolean")
		}
		out.ProfanityFilter = b
	}
	if raw := r.FormValue("vocabulary"); raw != "" {
		for _, word := range strings.Split(raw, ",") {
			if word = strings.TrimSpace(word); word != "" {
				out.Vocabulary = append(out.Vocabulary, word)
			}
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// URL-only multipart requests are allowed.
			out.File.URL = r.FormValue("file_url")
			return out, nil
		}
		return nil, canonical.NewInvalidInputError("file", "invalid file part: "+err.Error())
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, canonical.NewInvalidInputError("file", "reading file part: "+err.Error())
	}
	out.File = canonical.FileInput{Name: header.Filename, Content: content}
	return out, nil
}

func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return canonical.NewInvalidInputError("body", "invalid JSON body: "+err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
