package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/asyncjob"
	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
	"github.com/Jiyath5516F/edenai-apis/pkg/provider"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage/memory"
)

// fakeVendor serves every subfeature with canned responses so handler
// behavior can be tested without HTTP round trips to real vendors.
type fakeVendor struct {
	name string

	translateErr error
	lastText     string
	lastFile     canonical.FileInput

	launchID  string
	launchErr error
	lastReq   *canonical.SpeechRequest

	results     []*canonical.AsyncResponse[canonical.SpeechToText]
	resultCalls int
}

func (f *fakeVendor) Name() string { return f.name }

func (f *fakeVendor) AutomaticTranslation(ctx context.Context, req *canonical.TranslationRequest) (*canonical.Response[canonical.AutomaticTranslation], error) {
	if f.translateErr != nil {
		return nil, f.translateErr
	}
	f.lastText = req.Text
	return &canonical.Response[canonical.AutomaticTranslation]{
		Original:     jsonx.StringValue("raw"),
		Standardized: canonical.AutomaticTranslation{Text: "Hallo Welt"},
	}, nil
}

func (f *fakeVendor) DetectExplicitContent(ctx context.Context, req *canonical.ImageRequest) (*canonical.Response[canonical.ExplicitContent], error) {
	f.lastFile = req.File
	return &canonical.Response[canonical.ExplicitContent]{
		Original:     jsonx.StringValue("raw"),
		Standardized: canonical.ExplicitContent{NSFWLikelihood: 1},
	}, nil
}

func (f *fakeVendor) LaunchSpeechToText(ctx context.Context, req *canonical.SpeechRequest) (string, error) {
	if f.launchErr != nil {
		return "", f.launchErr
	}
	f.lastReq = req
	return f.launchID, nil
}

func (f *fakeVendor) SpeechToTextResult(ctx context.Context, providerJobID string) (*canonical.AsyncResponse[canonical.SpeechToText], error) {
	i := f.resultCalls
	f.resultCalls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

type fakeUploader struct {
	lastName string
	url      string
}

func (f *fakeUploader) Upload(ctx context.Context, name string, content []byte) (string, error) {
	f.lastName = name
	return f.url, nil
}

func newTestAdapter(t *testing.T, vendor *fakeVendor, uploader FileUploader) (*Adapter, *memory.Store) {
	t.Helper()
	reg := provider.NewRegistry()
	if err := reg.Register(vendor); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	store := memory.New(0)
	return NewAdapter(reg, store, uploader, nil, AdapterConfig{
		Poller: asyncjob.Poller{MaxAttempts: 3, Interval: time.Millisecond},
	}), store
}

func postJSON(t *testing.T, a *Adapter, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestAutomaticTranslation(t *testing.T) {
	vendor := &fakeVendor{name: "fake"}
	a, _ := newTestAdapter(t, vendor, nil)

	rec := postJSON(t, a, "/v1/translation/automatic_translation", map[string]any{
		"provider":        "fake",
		"text":            "Hello world",
		"source_language": "en",
		"target_language": "de",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Standardized canonical.AutomaticTranslation `json:"standardized_response"`
	}
	decodeBody(t, rec, &resp)
	if resp.Standardized.Text != "Hallo Welt" {
		t.Errorf("unexpected translation %q", resp.Standardized.Text)
	}
	if vendor.lastText != "Hello world" {
		t.Errorf("vendor received text %q", vendor.lastText)
	}
}

func TestAutomaticTranslation_UnknownProvider(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeVendor{name: "fake"}, nil)

	rec := postJSON(t, a, "/v1/translation/automatic_translation", map[string]any{
		"provider": "nope",
		"text":     "x",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Error.Type != ErrorTypeInvalidRequest {
		t.Errorf("expected invalid_request_error, got %q", resp.Error.Type)
	}
	if resp.Error.Param != "provider" {
		t.Errorf("expected param provider, got %q", resp.Error.Param)
	}
}

func TestAutomaticTranslation_VendorError(t *testing.T) {
	vendor := &fakeVendor{
		name:         "fake",
		translateErr: canonical.NewProviderHTTPError("fake", "quota exceeded", 429),
	}
	a, _ := newTestAdapter(t, vendor, nil)

	rec := postJSON(t, a, "/v1/translation/automatic_translation", map[string]any{
		"provider": "fake",
		"text":     "x",
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Error.Type != ErrorTypeProvider {
		t.Errorf("expected provider_error, got %q", resp.Error.Type)
	}
	if resp.Error.Message != "quota exceeded" || resp.Error.Provider != "fake" || resp.Error.Code != 429 {
		t.Errorf("vendor error not preserved: %+v", resp.Error)
	}
}

func TestAutomaticTranslation_BadJSON(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeVendor{name: "fake"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/translation/automatic_translation", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExplicitContent_Multipart(t *testing.T) {
	vendor := &fakeVendor{name: "fake"}
	a, _ := newTestAdapter(t, vendor, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("provider", "fake")
	fw, err := mw.CreateFormFile("file", "photo.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	fw.Write([]byte("jpeg bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/image/explicit_content", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if vendor.lastFile.Name != "photo.jpg" {
		t.Errorf("vendor received file name %q", vendor.lastFile.Name)
	}
	if string(vendor.lastFile.Content) != "jpeg bytes" {
		t.Errorf("vendor received content %q", vendor.lastFile.Content)
	}
}

func TestExplicitContent_FileURL(t *testing.T) {
	vendor := &fakeVendor{name: "fake"}
	a, _ := newTestAdapter(t, vendor, nil)

	rec := postJSON(t, a, "/v1/image/explicit_content", map[string]any{
		"provider": "fake",
		"file_url": "https://cdn.example.com/photo.jpg",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if vendor.lastFile.URL != "https://cdn.example.com/photo.jpg" {
		t.Errorf("vendor received URL %q", vendor.lastFile.URL)
	}
}

func TestSpeechLaunch(t *testing.T) {
	vendor := &fakeVendor{name: "fake", launchID: "vendor-42"}
	a, store := newTestAdapter(t, vendor, nil)

	rec := postJSON(t, a, "/v1/audio/speech_to_text_async", map[string]any{
		"provider":   "fake",
		"file_url":   "https://cdn.example.com/audio.wav",
		"language":   "en-US",
		"vocabulary": []string{"edenai"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp launchResponse
	decodeBody(t, rec, &resp)
	if resp.JobID == "" {
		t.Fatal("expected a job id")
	}
	if resp.ProviderJobID != "vendor-42" {
		t.Errorf("provider job id %q", resp.ProviderJobID)
	}
	if resp.Status != canonical.JobPending {
		t.Errorf("expected pending, got %q", resp.Status)
	}

	job, err := store.GetJob(context.Background(), resp.JobID)
	if err != nil {
		t.Fatalf("job not persisted: %v", err)
	}
	if job.Provider != "fake" || job.ProviderJobID != "vendor-42" || job.Status != canonical.JobPending {
		t.Errorf("unexpected stored job: %+v", job)
	}
	if vendor.lastReq.Language != "en-US" || len(vendor.lastReq.Vocabulary) != 1 {
		t.Errorf("vendor received request %+v", vendor.lastReq)
	}
}

func TestSpeechLaunch_UploadsRawBytes(t *testing.T) {
	vendor := &fakeVendor{name: "fake", launchID: "vendor-1"}
	up := &fakeUploader{url: "https://files.example.com/abc.wav"}
	a, _ := newTestAdapter(t, vendor, up)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("provider", "fake")
	mw.WriteField("speakers", "2")
	mw.WriteField("profanity_filter", "true")
	fw, _ := mw.CreateFormFile("file", "meeting.wav")
	fw.Write([]byte("RIFF data"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/audio/speech_to_text_async", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if up.lastName != "meeting.wav" {
		t.Errorf("uploader received name %q", up.lastName)
	}
	if vendor.lastReq.File.URL != up.url {
		t.Errorf("vendor received URL %q, want hosted URL", vendor.lastReq.File.URL)
	}
	if vendor.lastReq.File.Content != nil {
		t.Error("raw content should be dropped after hosting")
	}
	if vendor.lastReq.Speakers != 2 || !vendor.lastReq.ProfanityFilter {
		t.Errorf("form options not decoded: %+v", vendor.lastReq)
	}
}

func launchJob(t *testing.T, a *Adapter) string {
	t.Helper()
	rec := postJSON(t, a, "/v1/audio/speech_to_text_async", map[string]any{
		"provider": "fake",
		"file_url": "https://cdn.example.com/audio.wav",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("launch failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp launchResponse
	decodeBody(t, rec, &resp)
	return resp.JobID
}

func getResult(t *testing.T, a *Adapter, jobID, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/audio/speech_to_text_async/"+jobID+query, nil)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func TestSpeechResult_Pending(t *testing.T) {
	vendor := &fakeVendor{
		name:     "fake",
		launchID: "v-1",
		results: []*canonical.AsyncResponse[canonical.SpeechToText]{
			{Status: canonical.JobPending, ProviderJobID: "v-1"},
		},
	}
	a, _ := newTestAdapter(t, vendor, nil)
	jobID := launchJob(t, a)

	rec := getResult(t, a, jobID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp canonical.AsyncResponse[canonical.SpeechToText]
	decodeBody(t, rec, &resp)
	if resp.Status != canonical.JobPending {
		t.Errorf("expected pending, got %q", resp.Status)
	}
}

func TestSpeechResult_CompletedAndCached(t *testing.T) {
	done := &canonical.AsyncResponse[canonical.SpeechToText]{
		Status:        canonical.JobSucceeded,
		ProviderJobID: "v-1",
		Original:      jsonx.StringValue("raw"),
		Standardized:  &canonical.SpeechToText{Text: "hello there"},
	}
	vendor := &fakeVendor{
		name:     "fake",
		launchID: "v-1",
		results:  []*canonical.AsyncResponse[canonical.SpeechToText]{done},
	}
	a, store := newTestAdapter(t, vendor, nil)
	jobID := launchJob(t, a)

	rec := getResult(t, a, jobID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp canonical.AsyncResponse[canonical.SpeechToText]
	decodeBody(t, rec, &resp)
	if resp.Status != canonical.JobSucceeded || resp.Standardized.Text != "hello there" {
		t.Errorf("unexpected response: %+v", resp)
	}

	job, err := store.GetJob(context.Background(), jobID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.Status != canonical.JobSucceeded {
		t.Errorf("stored status %q", job.Status)
	}

	// A second read is served from storage, not the vendor.
	calls := vendor.resultCalls
	rec = getResult(t, a, jobID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
	if vendor.resultCalls != calls {
		t.Errorf("expected no extra vendor call, got %d", vendor.resultCalls-calls)
	}
}

func TestSpeechResult_Failed(t *testing.T) {
	vendor := &fakeVendor{
		name:     "fake",
		launchID: "v-1",
		results: []*canonical.AsyncResponse[canonical.SpeechToText]{
			{Status: canonical.JobFailed, ProviderJobID: "v-1", Error: "audio too short"},
		},
	}
	a, store := newTestAdapter(t, vendor, nil)
	jobID := launchJob(t, a)

	rec := getResult(t, a, jobID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp canonical.AsyncResponse[canonical.SpeechToText]
	decodeBody(t, rec, &resp)
	if resp.Status != canonical.JobFailed || resp.Error != "audio too short" {
		t.Errorf("unexpected response: %+v", resp)
	}

	job, _ := store.GetJob(context.Background(), jobID)
	if job.Status != canonical.JobFailed || job.Error != "audio too short" {
		t.Errorf("stored job: %+v", job)
	}
}

func TestSpeechResult_WaitPollsUntilDone(t *testing.T) {
	pending := &canonical.AsyncResponse[canonical.SpeechToText]{Status: canonical.JobPending, ProviderJobID: "v-1"}
	done := &canonical.AsyncResponse[canonical.SpeechToText]{
		Status:        canonical.JobSucceeded,
		ProviderJobID: "v-1",
		Standardized:  &canonical.SpeechToText{Text: "ok"},
	}
	vendor := &fakeVendor{
		name:     "fake",
		launchID: "v-1",
		results:  []*canonical.AsyncResponse[canonical.SpeechToText]{pending, pending, done},
	}
	a, _ := newTestAdapter(t, vendor, nil)
	jobID := launchJob(t, a)

	rec := getResult(t, a, jobID, "?wait=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp canonical.AsyncResponse[canonical.SpeechToText]
	decodeBody(t, rec, &resp)
	if resp.Status != canonical.JobSucceeded {
		t.Errorf("expected succeeded, got %q", resp.Status)
	}
	if vendor.resultCalls != 3 {
		t.Errorf("expected 3 polls, got %d", vendor.resultCalls)
	}
}

func TestSpeechResult_NotFound(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeVendor{name: "fake"}, nil)

	rec := getResult(t, a, "no-such-job", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Error.Type != ErrorTypeNotFound {
		t.Errorf("expected not_found_error, got %q", resp.Error.Type)
	}
}

func TestListJobs(t *testing.T) {
	vendor := &fakeVendor{name: "fake", launchID: "v-1"}
	a, _ := newTestAdapter(t, vendor, nil)
	launchJob(t, a)
	launchJob(t, a)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Jobs []jobView `json:"jobs"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(resp.Jobs))
	}
	if resp.Jobs[0].Subfeature != "speech_to_text_async" {
		t.Errorf("unexpected job view: %+v", resp.Jobs[0])
	}
}

func TestListProviders(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeVendor{name: "fake"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/providers", nil)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Capabilities map[string][]string `json:"capabilities"`
	}
	decodeBody(t, rec, &resp)
	got := resp.Capabilities["translation/automatic_translation"]
	if len(got) != 1 || got[0] != "fake" {
		t.Errorf("unexpected vendors %v", got)
	}
	if vendors := resp.Capabilities["ocr/invoice_parser"]; len(vendors) != 0 {
		t.Errorf("fake vendor should not serve invoice_parser, got %v", vendors)
	}
}

func TestHealthz(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeVendor{name: "fake"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
