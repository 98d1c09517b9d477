// Package backend is the HTTP client for the remote clinic API. Every
// response is an envelope {success, message?, <payload>?}; every
// request carries the caller's role token under that role's header.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Auth header keys, one named constant per role. The server matches
// these case-insensitively but the portal always sends the canonical
// lowercase form.
const (
	HeaderAdminToken  = "atoken"
	HeaderDoctorToken = "dtoken"
)

const defaultTimeout = 15 * time.Second

// envelope is the common part of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) reject() error {
	msg := e.Message
	if msg == "" {
		msg = "request rejected by server"
	}
	return &Error{Kind: KindRejected, Message: msg}
}

// Client is the shared transport under both role clients. No retries,
// no caching; one request per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the API at baseURL. A non-positive
// timeout falls back to the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path, tokenHeader, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return transportErr(err)
	}
	if tokenHeader != "" {
		req.Header.Set(tokenHeader, token)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path, tokenHeader, token string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return transportErr(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return transportErr(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tokenHeader != "" {
		req.Header.Set(tokenHeader, token)
	}
	return c.do(req, out)
}

func (c *Client) postMultipart(ctx context.Context, path, tokenHeader, token string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return transportErr(err)
	}
	if _, err := part.Write(file); err != nil {
		return transportErr(err)
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return transportErr(err)
		}
	}
	if err := w.Close(); err != nil {
		return transportErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return transportErr(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if tokenHeader != "" {
		req.Header.Set(tokenHeader, token)
	}
	return c.do(req, out)
}

// do executes the request and decodes the envelope. out must embed
// envelope; success=false surfaces as a rejection error regardless of
// HTTP status, so the server's message is never lost on 4xx.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode >= 300 {
			return transportErr(fmt.Errorf("http %d", resp.StatusCode))
		}
		return transportErr(err)
	}

	env, ok := out.(interface{ result() error })
	if !ok {
		return nil
	}
	return env.result()
}

func (e *envelope) result() error {
	if e.Success {
		return nil
	}
	return e.reject()
}
