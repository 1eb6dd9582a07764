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

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/common"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
	"github.com/dmitrijs2005/agsregistration/internal/netx"
)

const maxErrorBody = 4 << 10

// APIClient talks to the school registration API over HTTP/JSON.
type APIClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewAPIClient(baseURL string, timeout time.Duration, log logging.Logger) *APIClient {
	if log == nil {
		log = logging.Nop()
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

// flexID accepts a JSON string or number and keeps its text.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type registrationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		ID        flexID `json:"id"`
		StudentID flexID `json:"student_id"`
	} `json:"data"`
}

type imageUploadResponse struct {
	Item *struct {
		ID   flexID `json:"id"`
		Type flexID `json:"type"`
		Path string `json:"path"`
	} `json:"item"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SubmitRegistration posts the payload to /students.
func (c *APIClient) SubmitRegistration(ctx context.Context, p *models.RegistrationPayload) (*models.SubmissionReceipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/students", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var resp registrationResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}

	receipt := &models.SubmissionReceipt{Message: resp.Message}
	if resp.Data != nil {
		receipt.ID = string(resp.Data.ID)
		receipt.StudentID = string(resp.Data.StudentID)
	}
	return receipt, nil
}

// UploadImage posts one file to /studentImage. The file id is sent as the
// idempotency key.
func (c *APIClient) UploadImage(ctx context.Context, in models.ImageUpload) (*models.ImageDescriptor, error) {
	fields := map[string]string{"type": in.DocumentType.Code()}
	if in.StudentID != "" {
		fields[common.StudentIDFieldName] = in.StudentID
	}

	body, contentType, err := netx.NewMultipartBody(fields, netx.FormFile{
		Field:       "path",
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Data:        in.Data,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/studentImage", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if in.FileID != "" {
		req.Header.Set(common.IdempotencyKeyHeaderName, in.FileID)
	}

	var resp imageUploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Item == nil || resp.Item.ID == "" {
		return nil, fmt.Errorf("upload response without item id: %w", ErrUnexpectedResponse)
	}

	return &models.ImageDescriptor{
		ServerID:     string(resp.Item.ID),
		Path:         resp.Item.Path,
		DocumentType: in.DocumentType,
	}, nil
}

// DeleteImage removes an uploaded image. A missing image counts as deleted.
func (c *APIClient) DeleteImage(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/studentImage/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	err = c.do(req, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		c.log.Debug(ctx, "image already gone", "id", id)
		return nil
	}
	return err
}

// do sends req and decodes a 2xx JSON body into out (when non-nil).
func (c *APIClient) do(req *http.Request, out any) error {
	ctx := req.Context()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		if netx.IsTransportError(err) {
			return fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, ErrUnavailable, err)
		}
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case netx.IsServerError(resp.StatusCode):
		b, _ := netx.ReadLimited(resp.Body, maxErrorBody)
		return fmt.Errorf("%s %s: status %d: %s: %w", req.Method, req.URL.Path, resp.StatusCode,
			strings.TrimSpace(string(b)), ErrUnavailable)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		b, _ := netx.ReadLimited(resp.Body, maxErrorBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(b)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w: %v", req.Method, req.URL.Path, ErrUnexpectedResponse, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		if er.Error != "" {
			return er.Error
		}
	}
	return strings.TrimSpace(string(body))
}
