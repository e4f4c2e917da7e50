package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/logger"
)

const (
	// Network transfer is fast; AI inference is not. The parse call gets a
	// separate, longer budget than the file download.
	downloadTimeout = 30 * time.Second
	parseTimeout    = 60 * time.Second
)

// UpstreamError carries the AI service's own error detail when it returned one.
type UpstreamError struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ai service %s failed: %s", e.Op, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("ai service %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ai service %s failed with status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client talks to the external AI parsing service.
type Client struct {
	baseURL        string
	downloadClient *http.Client
	parseClient    *http.Client
	tempDir        string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		downloadClient: &http.Client{Timeout: downloadTimeout},
		parseClient:    &http.Client{Timeout: parseTimeout},
		tempDir:        os.TempDir(),
	}
}

// ParseResume downloads the resource at resumeURL into a scoped temporary
// file, forwards it to POST /parse-resume as a multipart payload, and returns
// the parsed fields. The temporary file is removed on every exit path.
func (c *Client) ParseResume(ctx context.Context, resumeURL string) (*domain.ParsedResume, error) {
	tempPath, fileName, err := c.download(ctx, resumeURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			logger.Log.Warn("failed to remove temp resume file", "path", tempPath, "error", rmErr)
		}
	}()

	return c.parse(ctx, tempPath, fileName)
}

// JobMatches asks the AI service for its own ranking of jobs against the
// given skill and experience lists. This is a separate ranking path from the
// locally computed employer-facing score and the two are not reconciled.
func (c *Client) JobMatches(ctx context.Context, skills, experience []string) ([]domain.JobMatch, error) {
	payload, err := json.Marshal(map[string]any{
		"skills":     skills,
		"experience": experience,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/job-matches", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.parseClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "job-matches", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamFromResponse("job-matches", resp)
	}

	var out struct {
		Matches []domain.JobMatch `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &UpstreamError{Op: "job-matches", Err: err}
	}
	return out.Matches, nil
}

// download fetches the stored resume into a temp file and returns its path
// together with the filename to present to the AI service.
func (c *Client) download(ctx context.Context, resumeURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resumeURL, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return "", "", &UpstreamError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", &UpstreamError{Op: "download", Status: resp.StatusCode}
	}

	fileName := path.Base(resumeURL)
	if !strings.Contains(fileName, ".") {
		fileName = "resume.pdf"
	}

	tmp, err := os.CreateTemp(c.tempDir, "resume-*"+path.Ext(fileName))
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", "", &UpstreamError{Op: "download", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", err
	}

	return tmp.Name(), fileName, nil
}

func (c *Client) parse(ctx context.Context, tempPath, fileName string) (*domain.ParsedResume, error) {
	f, err := os.Open(tempPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse-resume", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.parseClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "parse-resume", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamFromResponse("parse-resume", resp)
	}

	var wire parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &UpstreamError{Op: "parse-resume", Err: err}
	}
	return wire.normalize(), nil
}

// upstreamFromResponse extracts the service's error/message body field, when
// present, so the detail survives into logs.
func upstreamFromResponse(op string, resp *http.Response) *UpstreamError {
	var detail struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&detail)

	msg := detail.Error
	if msg == "" {
		msg = detail.Message
	}
	return &UpstreamError{Op: op, Status: resp.StatusCode, Detail: msg}
}
