package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/ports"
)

// DefaultBaseURL is the backend used when nothing is configured
const DefaultBaseURL = "http://localhost:5000"

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// Options configures a Client
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the graduation photo backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Verify interface compliance at compile time
var _ ports.Backend = (*Client)(nil)

// NewClient creates a backend client. The default HTTP client has no
// timeout: generation can take well over a minute and calls are only
// abandoned through their context.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		baseURL:    base,
		httpClient: client,
		userAgent:  opts.UserAgent,
	}
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

type verifyRequest struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Verify checks whether the identifier belongs to a graduate
func (c *Client) Verify(ctx context.Context, id string) (domain.VerifyResult, error) {
	body, err := json.Marshal(verifyRequest{ID: id})
	if err != nil {
		return domain.VerifyResult{}, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ced", bytes.NewReader(body))
	if err != nil {
		return domain.VerifyResult{}, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out domain.VerifyResult
	if err := c.do(req, &out); err != nil {
		return domain.VerifyResult{}, fmt.Errorf("failed to verify identifier: %w", err)
	}

	logging.Logger.Debug("Identifier verified by backend", "identifier", id, "exists", out.Exists)
	return out, nil
}

// Generate uploads the captured PNG and returns the graduation photo
func (c *Client) Generate(ctx context.Context, id string, png []byte) (domain.GenerateResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="captured.png"`)
	header.Set("Content-Type", "image/png")
	part, err := form.CreatePart(header)
	if err != nil {
		return domain.GenerateResult{}, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(png); err != nil {
		return domain.GenerateResult{}, fmt.Errorf("failed to write image part: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.GenerateResult{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	endpoint := c.baseURL + "/api/photo/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return domain.GenerateResult{}, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out domain.GenerateResult
	if err := c.do(req, &out); err != nil {
		return domain.GenerateResult{}, fmt.Errorf("failed to generate photo: %w", err)
	}

	logging.Logger.Debug("Photo generated by backend",
		"identifier", id,
		"generated", out.Generated,
		"has_existing_photo", out.HasExistingPhoto)
	return out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response body: %w", domain.ErrTransport, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	be := &domain.BackendError{Status: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusNotFound:
		be.Err = domain.ErrNotFound
	case http.StatusBadRequest:
		be.Err = domain.ErrBadRequest
	default:
		be.Err = domain.ErrTransport
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil && !errors.Is(err, io.EOF) {
		return be
	}
	var body errorResponse
	if json.Unmarshal(raw, &body) == nil {
		be.Message = body.Error
		if be.Message == "" {
			be.Message = body.Message
		}
	}
	return be
}
