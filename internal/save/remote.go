package save

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteStore is the cloud side of the save system. Payloads are encoded
// snapshots.
type RemoteStore interface {
	LoadRemote(ctx context.Context, key string) (payload string, found bool, err error)
	SaveRemote(ctx context.Context, key, payload string) error
}

// HTTPRemote talks to a cloudsave server
type HTTPRemote struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRemote creates a client for the server at baseURL
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTPRemote) saveURL(key string) string {
	return h.baseURL + "/v1/saves/" + url.PathEscape(key)
}

// LoadRemote fetches the payload stored under key
func (h *HTTPRemote) LoadRemote(ctx context.Context, key string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.saveURL(key), nil)
	if err != nil {
		return "", false, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", false, fmt.Errorf("read remote save: %w", err)
		}
		return string(body), true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("remote load %s: %s", key, resp.Status)
	}
}

// SaveRemote stores payload under key
func (h *HTTPRemote) SaveRemote(ctx context.Context, key, payload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.saveURL(key), strings.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("remote save %s: %s", key, resp.Status)
	}
	return nil
}

// Register asks the server to allocate a fresh profile key
func (h *HTTPRemote) Register(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/v1/profiles", nil)
	if err != nil {
		return "", err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("register profile: %s", resp.Status)
	}

	var out struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode profile: %w", err)
	}
	return out.Key, nil
}
