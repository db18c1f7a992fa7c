package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
)

// HTTPHost publishes releases to a remote host over plain HTTP: one POST
// creating the release, then one PUT per archive.
type HTTPHost struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPHost creates an HTTPHost for the given base URL. The token, when
// non-empty, is sent as a bearer credential.
func NewHTTPHost(baseURL, token string) *HTTPHost {
	return &HTTPHost{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
	}
}

// releasePayload is the JSON body of the create-release call.
type releasePayload struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
	Body       string `json:"body"`
}

// releaseResponse is the JSON body the host answers with.
type releaseResponse struct {
	ID string `json:"id"`
}

// PublishRelease implements the Host interface.
func (h *HTTPHost) PublishRelease(ctx context.Context, rec *Record) (string, error) {
	logger := ctxlog.FromContext(ctx).With("tag", rec.Tag)

	payload, err := json.Marshal(releasePayload{
		TagName:    rec.Tag,
		Prerelease: rec.Prerelease,
		Body:       rec.Body,
	})
	if err != nil {
		return "", fmt.Errorf("encoding release payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.baseURL+"/releases", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building create-release request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	h.authorize(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("creating release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("release host rejected create with status %d: %s",
			resp.StatusCode, string(body))
	}

	var created releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decoding create-release response: %w", err)
	}
	logger.Debug("Release created on host.", "releaseID", created.ID)

	for _, a := range rec.Files {
		if err := h.uploadAsset(ctx, created.ID, a.Name, a.Data); err != nil {
			return "", err
		}
		logger.Debug("Asset uploaded.", "name", a.Name, "bytes", len(a.Data))
	}

	return created.ID, nil
}

// uploadAsset PUTs one archive under the created release.
func (h *HTTPHost) uploadAsset(ctx context.Context, releaseID, name string, data []byte) error {
	target := fmt.Sprintf("%s/releases/%s/assets?name=%s",
		h.baseURL, releaseID, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building asset upload request for %q: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(data))
	h.authorize(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("uploading asset %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("release host rejected asset %q with status %d: %s",
			name, resp.StatusCode, string(body))
	}
	return nil
}

func (h *HTTPHost) authorize(req *http.Request) {
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
}
