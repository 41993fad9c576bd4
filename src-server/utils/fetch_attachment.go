package utils

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
)

// FetchAttachment downloads an uploaded file, refusing anything over
// maxBytes, and returns its content along with the sha256 hex digest.
func FetchAttachment(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("FetchAttachment: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("FetchAttachment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("FetchAttachment: unexpected status %s", resp.Status)
	}

	h := sha256.New()
	data, err := io.ReadAll(io.TeeReader(io.LimitReader(resp.Body, maxBytes+1), h))
	if err != nil {
		return nil, "", fmt.Errorf("FetchAttachment: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", fmt.Errorf("FetchAttachment: file is larger than %d bytes", maxBytes)
	}

	return data, fmt.Sprintf("%x", h.Sum(nil)), nil
}
