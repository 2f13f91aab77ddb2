package arxiv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"scholar-assist-api/core/interfaces"
)

// mockResponse implements interfaces.Response
type mockResponse struct {
	statusCode int
	body       []byte
}

func (r *mockResponse) StatusCode() int { return r.statusCode }

func (r *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

func (r *mockResponse) Header(key string) string { return "" }

// mockHTTPClient implements interfaces.HTTPClient and records requested URLs
type mockHTTPClient struct {
	statusCode int
	body       []byte
	err        error
	calls      []string
}

func (c *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	c.calls = append(c.calls, url)
	if c.err != nil {
		return nil, c.err
	}
	return &mockResponse{statusCode: c.statusCode, body: c.body}, nil
}

func (c *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, errors.New("not implemented")
}

// mockCache implements interfaces.Cache
type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("key not found")
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}
