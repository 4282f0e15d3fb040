// Package rest provides the HTTP plumbing shared by all vendor
// adapters: request building (JSON, form, multipart), response
// decoding into both typed wire structs and the raw jsonx tree, and
// mapping of HTTP and network failures onto ProviderError.
//
// Adapters embed a Client and delegate their transport to it; the
// per-vendor code reduces to request shapes and normalization tables.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/jsonx"
)

// Client performs HTTP requests against one vendor endpoint.
type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates a Client for a vendor API. headers are applied to
// every request (typically the vendor's auth header). A zero timeout
// defaults to 30s.
func NewClient(provider, baseURL string, timeout time.Duration, headers map[string]string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		provider:   provider,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
	}
}

// Provider returns the vendor name the client reports in errors.
func (c *Client) Provider() string { return c.provider }

// GetJSON issues a GET and decodes the JSON response. When out is
// non-nil the body is additionally unmarshaled into it. The returned
// tree is the raw vendor payload.
func (c *Client) GetJSON(ctx context.Context, path string, out any) (jsonx.Value, error) {
	return c.doJSON(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) (jsonx.Value, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("encoding request: %s", err))
	}
	return c.doJSON(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data), out)
}

// PostForm issues a POST with a URL-encoded form body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) (jsonx.Value, error) {
	return c.doJSON(ctx, http.MethodPost, path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), out)
}

// PostMultipart issues a POST with a single file part plus optional
// extra form fields.
func (c *Client) PostMultipart(ctx context.Context, path, fieldName, fileName string, content []byte, fields map[string]string, out any) (jsonx.Value, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("building multipart body: %s", err))
	}
	if _, err := part.Write(content); err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("building multipart body: %s", err))
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("building multipart body: %s", err))
		}
	}
	if err := w.Close(); err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("building multipart body: %s", err))
	}

	return c.doJSON(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, out)
}

// PostBytes issues a POST with a raw binary body and decodes the JSON
// response. Used for upload endpoints that take the file as the body.
func (c *Client) PostBytes(ctx context.Context, path string, content []byte, out any) (jsonx.Value, error) {
	return c.doJSON(ctx, http.MethodPost, path, "application/octet-stream", bytes.NewReader(content), out)
}

// PostRaw issues a POST with a JSON body and returns the raw response
// bytes. Used for endpoints that return binary payloads (translated
// documents, audio).
func (c *Client) PostRaw(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, canonical.NewProviderError(c.provider, fmt.Sprintf("encoding request: %s", err))
	}

	resp, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, canonical.NewProviderError(c.provider, fmt.Sprintf("reading response: %s", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, MapHTTPError(c.provider, resp.StatusCode, raw)
	}
	return raw, nil
}

// doJSON sends the request and decodes the JSON response body into
// both the raw tree and, when out is non-nil, the typed wire struct.
func (c *Client) doJSON(ctx context.Context, method, path, contentType string, body io.Reader, out any) (jsonx.Value, error) {
	resp, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return jsonx.Value{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("reading response: %s", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return jsonx.Value{}, MapHTTPError(c.provider, resp.StatusCode, raw)
	}

	tree, err := jsonx.Decode(raw)
	if err != nil {
		return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("parsing response: %s", err))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return jsonx.Value{}, canonical.NewProviderError(c.provider, fmt.Sprintf("parsing response: %s", err))
		}
	}
	return tree, nil
}

// do builds and sends the HTTP request, mapping network failures.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, canonical.NewProviderError(c.provider, fmt.Sprintf("building request: %s", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, MapNetworkError(c.provider, err)
	}
	return resp, nil
}
