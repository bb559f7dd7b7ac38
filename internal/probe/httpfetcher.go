package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const defaultMaxBodyBytes = 5 << 20

type HTTPFetcher struct {
	Client       *http.Client
	MaxBodyBytes int64
}

func NewHTTPFetcher(client *http.Client, maxBodyBytes int64) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPFetcher{Client: client, MaxBodyBytes: maxBodyBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Response{Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return Response{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBodyBytes))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return Response{StatusCode: resp.StatusCode, Body: string(body)}
}
