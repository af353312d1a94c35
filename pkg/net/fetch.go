package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const maxBodySize = 10 << 20

var ErrURLNotFound = errors.New("URL not found")

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch returns the content at target. A nil client uses an unauthenticated one.
func Fetch(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	if client == nil {
		client = GetHTTPClient(ctx, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP Get request: %w", err)
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := client.Do(req) //nolint:gosec // G107: URL supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrURLNotFound, target)
	}

	if resp.StatusCode != http.StatusOK {
		PrintHTTPResponse(resp)
		return nil, fmt.Errorf("error fetching content (status: %d - %s): %s", resp.StatusCode, resp.Status, target)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading content: %w", err)
	}
	if len(b) > maxBodySize {
		return nil, fmt.Errorf("content exceeds %d bytes: %s", maxBodySize, target)
	}
	return b, nil
}
