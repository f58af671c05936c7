package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudshare/cloudshare-cli/internal/client/auth"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// HTTPClient is the Client implementation over plain HTTP. No client-level
// timeout is set; callers bound individual requests through ctx.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
	logger  logging.Logger
}

func NewHTTPClient(baseURL string, tokens auth.TokenSource, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger.With("component", "api"),
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// newRequest builds a request with a correlation id and, unless the endpoint
// is public, a bearer token fetched for this call.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, public bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if !public {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// apiError maps a non-2xx response to a sentinel, surfacing the server's
// message when the body carries one.
func (c *HTTPClient) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = common.ErrUnauthorized
	case http.StatusForbidden:
		base = common.ErrForbidden
	case http.StatusNotFound:
		base = common.ErrNotFound
	default:
		base = common.ErrUnavailable
	}

	if payload.Message == "" {
		return fmt.Errorf("server returned status %d: %w", resp.StatusCode, base)
	}
	return fmt.Errorf("%s: %w", payload.Message, base)
}

// doJSON performs a request with an optional JSON body and decodes an
// optional JSON response.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any, public bool) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType, public)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	var files []models.RemoteFile
	if err := c.doJSON(ctx, http.MethodGet, "/files/my", nil, &files, false); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *HTTPClient) PublicFile(ctx context.Context, fileID string) (*models.RemoteFile, error) {
	var file models.RemoteFile
	if err := c.doJSON(ctx, http.MethodGet, "/files/public/"+fileID, nil, &file, true); err != nil {
		return nil, err
	}
	return &file, nil
}

// Download streams the file's bytes into w and returns the byte count.
// Nothing is buffered beyond the transport's own windows. A session token is
// attached when one is held; public files download without one, so a missing
// token is not an error here.
func (c *HTTPClient) Download(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/download/"+fileID, nil, "", true)
	if err != nil {
		return 0, err
	}
	if token, err := c.tokens.Token(ctx); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, c.apiError(resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("reading download: %w", err)
	}
	return n, nil
}

// Upload sends the whole batch as a single multipart request; the server
// treats it as all-or-nothing.
func (c *HTTPClient) Upload(ctx context.Context, batch []models.PendingFile) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, pf := range batch {
		part, err := mw.CreateFormFile("files", pf.Name)
		if err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		f, err := os.Open(pf.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", pf.Name, err)
		}
		_, err = io.Copy(part, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", pf.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files/upload", &buf, mw.FormDataContentType(), false)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// The upload itself succeeded; treat an undecodable body as a
		// response without a credit count.
		c.logger.Warn(ctx, "upload response not decodable", "error", err)
		return &UploadResult{}, nil
	}
	return &result, nil
}

func (c *HTTPClient) TogglePublic(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/files/"+fileID+"/toggle-public", nil, nil, false)
}

func (c *HTTPClient) DeleteFile(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/files/"+fileID, nil, nil, false)
}

func (c *HTTPClient) Credits(ctx context.Context) (int, error) {
	var out struct {
		Credits int `json:"credits"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/credits", nil, &out, false); err != nil {
		return 0, err
	}
	return out.Credits, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	var out struct {
		OrderID string `json:"orderId"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/payments/create-order", req, &out, false); err != nil {
		return "", err
	}
	if out.OrderID == "" {
		return "", fmt.Errorf("create-order returned no order id")
	}
	return out.OrderID, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, res models.PaymentResult, planID string) (*VerifyResult, error) {
	in := struct {
		models.PaymentResult
		PlanID string `json:"planId"`
	}{res, planID}

	var out VerifyResult
	if err := c.doJSON(ctx, http.MethodPost, "/payments/verify-payment", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "/transaction", nil, &txs, false); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *HTTPClient) EnsureProfile(ctx context.Context, p models.Profile) error {
	return c.doJSON(ctx, http.MethodPost, "/profile/ensure", p, nil, false)
}
