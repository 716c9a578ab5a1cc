package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent       = "NewsSentiment/1.0"
	maxBodyBytes    = 4 << 20
	maxErrBodyBytes = 512
	defaultTimeout  = 15 * time.Second
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// getBody performs a GET and returns the body of a 2xx response
func getBody(ctx context.Context, client *http.Client, provider, reqURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", provider, err)
	}

	req.Header.Set("User-Agent", userAgent)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
		return nil, &StatusError{Provider: provider, Code: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", provider, err)
	}

	return body, nil
}
