package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pkg.jsn.cam/lorem/pkg/protocol"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrIncompatible = errors.New("incompatible server version")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	if e.RequestID != "" {
		msg += " (request " + e.RequestID + ")"
	}
	return msg
}

// Is lets callers test API errors against ErrNotFound and ErrBadRequest.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Client talks to a lorem server.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			// Safety net for calls without a context deadline.
			Timeout: 30 * time.Second,
		},
	}
}

// Words runs a words batch on the server. req.Kind is set for you.
func (c *Client) Words(ctx context.Context, req protocol.GenerateRequest) (*protocol.GenerateResponse, error) {
	return c.generate(ctx, protocol.KindWords, req)
}

func (c *Client) Sentences(ctx context.Context, req protocol.GenerateRequest) (*protocol.GenerateResponse, error) {
	return c.generate(ctx, protocol.KindSentences, req)
}

func (c *Client) Paragraphs(ctx context.Context, req protocol.GenerateRequest) (*protocol.GenerateResponse, error) {
	return c.generate(ctx, protocol.KindParagraphs, req)
}

// Generate dispatches on req.Kind.
func (c *Client) Generate(ctx context.Context, req protocol.GenerateRequest) (*protocol.GenerateResponse, error) {
	return c.generate(ctx, req.Kind, req)
}

func (c *Client) generate(ctx context.Context, kind protocol.Kind, req protocol.GenerateRequest) (*protocol.GenerateResponse, error) {
	req.Kind = kind
	var resp protocol.GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/"+string(kind), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context) (*protocol.HealthResponse, error) {
	var resp protocol.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckVersion fails with ErrIncompatible when the server's major version
// differs from this client's.
func (c *Client) CheckVersion(ctx context.Context) (string, error) {
	var resp protocol.VersionResponse
	if err := c.do(ctx, http.MethodGet, "/api/version", nil, &resp); err != nil {
		return "", err
	}
	ok, err := protocol.IsCompatibleVersion(protocol.Version, resp.Version)
	if err != nil {
		return resp.Version, err
	}
	if !ok {
		return resp.Version, fmt.Errorf("%w: %s", ErrIncompatible, protocol.CompatibilityError(protocol.Version, resp.Version))
	}
	return resp.Version, nil
}

func vocabularyPath(name string) string {
	return "/api/vocabularies/" + url.PathEscape(name)
}

func (c *Client) PutVocabulary(ctx context.Context, name string, words []string) (*protocol.Vocabulary, error) {
	var resp protocol.Vocabulary
	if err := c.do(ctx, http.MethodPut, vocabularyPath(name), protocol.VocabularyRequest{Words: words}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetVocabulary(ctx context.Context, name string) (*protocol.Vocabulary, error) {
	var resp protocol.Vocabulary
	if err := c.do(ctx, http.MethodGet, vocabularyPath(name), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListVocabularies(ctx context.Context) ([]protocol.Vocabulary, error) {
	var resp protocol.VocabularyListResponse
	if err := c.do(ctx, http.MethodGet, "/api/vocabularies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vocabularies, nil
}

func (c *Client) DeleteVocabulary(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, vocabularyPath(name), nil, nil)
}

// do sends body as JSON (when non-nil) and decodes a 2xx response into out
// (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		var er protocol.ErrorResponse
		if json.Unmarshal(bodyBytes, &er) == nil && er.Error != "" {
			apiErr.Message, apiErr.RequestID = er.Error, er.RequestID
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
