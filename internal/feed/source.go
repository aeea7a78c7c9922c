// Package feed loads the status feed from a file, an HTTP endpoint or an S3 object.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/huangsam/uatpulse/internal/contract"
)

// maxFeedBytes caps how much of a remote response is read.
const maxFeedBytes = 32 << 20

// ErrFeedTooLarge is returned when a remote feed exceeds maxFeedBytes.
var ErrFeedTooLarge = errors.New("feed too large")

// NewSource picks a source implementation from the location's scheme.
func NewSource(location string, timeout time.Duration) (contract.FeedSource, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("feed location is empty")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if _, err := url.Parse(location); err != nil {
			return nil, fmt.Errorf("invalid feed URL %q: %w", location, err)
		}
		return NewHTTPSource(location, timeout), nil
	case strings.HasPrefix(location, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, fmt.Errorf("invalid S3 location %q. Expected s3://bucket/key", location)
		}
		return NewS3Source(bucket, key, nil), nil
	default:
		return &FileSource{Path: location}, nil
	}
}

// FileSource reads the feed from the local filesystem.
type FileSource struct {
	Path string
}

// Key implements contract.FeedSource.
func (s *FileSource) Key() string {
	if abs, err := filepath.Abs(s.Path); err == nil {
		return "file://" + abs
	}
	return "file://" + s.Path
}

// Fetch implements contract.FeedSource.
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return data, nil
}

// Cacheable implements contract.FeedSource. Local files are never cached.
func (s *FileSource) Cacheable() bool {
	return false
}

// HTTPSource fetches the feed over HTTP(S) with a cache-busting query parameter.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Now    func() time.Time
}

// NewHTTPSource creates an HTTPSource with its own client timeout.
func NewHTTPSource(location string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    location,
		Client: &http.Client{Timeout: timeout},
		Now:    time.Now,
	}
}

// Key implements contract.FeedSource.
func (s *HTTPSource) Key() string {
	return s.URL
}

// Fetch implements contract.FeedSource.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(s.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}
	data, err := readFeedBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return data, nil
}

// Cacheable implements contract.FeedSource.
func (s *HTTPSource) Cacheable() bool {
	return true
}

// S3GetObjectAPI is the part of the S3 client used to read the feed.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the feed from an S3 object. The client is created from the default
// credential chain on first use when none is injected.
type S3Source struct {
	Bucket string
	Object string
	client S3GetObjectAPI
}

// NewS3Source creates an S3Source. A nil client defers to the default AWS configuration.
func NewS3Source(bucket, key string, client S3GetObjectAPI) *S3Source {
	return &S3Source{Bucket: bucket, Object: key, client: client}
}

// Key implements contract.FeedSource.
func (s *S3Source) Key() string {
	return "s3://" + s.Bucket + "/" + s.Object
}

// Fetch implements contract.FeedSource.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	if s.client == nil {
		cfg, err := awsConfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		s.client = s3.NewFromConfig(cfg)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Object),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object %s: %w", s.Key(), err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := readFeedBody(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object body: %w", err)
	}
	return data, nil
}

// readFeedBody reads at most maxFeedBytes and fails when the body is larger.
func readFeedBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFeedBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxFeedBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFeedTooLarge, maxFeedBytes)
	}
	return data, nil
}

// Cacheable implements contract.FeedSource.
func (s *S3Source) Cacheable() bool {
	return true
}
