package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type httpSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) Source {
	return &httpSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *httpSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	url := s.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Path: path, Status: resp.Status, StatusCode: resp.StatusCode}
	}

	data, err := readAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logger.Debug().Str("url", url).Int("bytes", len(data)).Msg("report fetched")
	return data, nil
}
