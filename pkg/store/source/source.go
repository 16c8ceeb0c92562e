package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Well-known report locations, relative to the source root.
const (
	InsightsPath = "/analysis_insights.json"
	ForecastPath = "/forecast_report.json"
)

const (
	KindHTTP = "http"
	KindFile = "file"
	KindS3   = "s3"
)

// maxReportSize caps how much of a report body is read into memory.
const maxReportSize = 32 << 20

// Source fetches raw report documents by path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// LoadError means a report could not be fetched: the source answered with a
// non-success status or the transport failed.
type LoadError struct {
	Path       string
	Status     string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("failed to load %s: %s", e.Path, e.Status)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Settings struct {
	Kind    string
	BaseURL string
	Root    string
	Bucket  string
	Prefix  string
	Timeout time.Duration
}

// New builds the source selected by settings.Kind.
func New(ctx context.Context, settings Settings) (Source, error) {
	switch strings.ToLower(settings.Kind) {
	case KindHTTP, "":
		if settings.BaseURL == "" {
			return nil, errors.New("http source requires a base url")
		}
		return NewHTTPSource(settings.BaseURL, settings.Timeout), nil
	case KindFile:
		if settings.Root == "" {
			return nil, errors.New("file source requires a root directory")
		}
		return NewFileSource(settings.Root), nil
	case KindS3:
		if settings.Bucket == "" {
			return nil, errors.New("s3 source requires a bucket")
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return NewS3Source(s3.NewFromConfig(cfg), settings.Bucket, settings.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", settings.Kind)
	}
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxReportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReportSize {
		return nil, fmt.Errorf("report exceeds %d bytes", maxReportSize)
	}
	return data, nil
}
