package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pixil98/go-forge/internal/document"
)

// BlobBackend stores the document in a remote versioned-blob endpoint.
// A read returns the blob plus an opaque revision token (ETag); a write
// carries the token from the most recent read and is rejected with a
// conflict if the stored revision has moved on. Transport-level retries
// are handled by retryablehttp; conflict retries belong to the façade.
type BlobBackend struct {
	url      *url.URL
	username string
	password string
	client   *retryablehttp.Client
}

type BlobBackendOpt func(*BlobBackend)

// WithCredentials sets the basic-auth credentials sent on every request.
func WithCredentials(username, password string) BlobBackendOpt {
	return func(b *BlobBackend) {
		b.username = username
		b.password = password
	}
}

// WithRequestTimeout bounds each individual HTTP attempt.
func WithRequestTimeout(d time.Duration) BlobBackendOpt {
	return func(b *BlobBackend) {
		b.client.HTTPClient.Timeout = d
	}
}

// WithTransportRetries sets how many times a failed request is retried
// at the transport level before surfacing ErrUnavailable.
func WithTransportRetries(n int) BlobBackendOpt {
	return func(b *BlobBackend) {
		b.client.RetryMax = n
	}
}

func NewBlobBackend(rawURL string, opts ...BlobBackendOpt) (*BlobBackend, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing blob url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("blob url %q: scheme must be http or https", rawURL)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.Logger = nil

	b := &BlobBackend{
		url:    u,
		client: client,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

func (b *BlobBackend) Load(ctx context.Context) (*document.Document, Version, error) {
	resp, err := b.request(ctx, http.MethodGet, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// Handled below
	case http.StatusNotFound, http.StatusNoContent:
		// No blob yet: start from a seed document with no revision.
		// The first save carries an empty base token.
		return document.New(), "", nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, "", fmt.Errorf("loading document: %w: status %d", ErrAuth, resp.StatusCode)
	default:
		return nil, "", fmt.Errorf("loading document: %w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading document body: %w: %v", ErrUnavailable, err)
	}

	if raw := resp.Header.Get("Content-MD5"); raw != "" {
		sum, err := base64.StdEncoding.DecodeString(raw)
		if err != nil || len(sum) != md5.Size || md5.Sum(data) != [md5.Size]byte(sum) {
			return nil, "", fmt.Errorf("document body does not match Content-MD5: %w", ErrCorrupt)
		}
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("parsing document: %w: %v", ErrCorrupt, err)
	}

	return &doc, versionFromResponse(resp, data), nil
}

func (b *BlobBackend) Save(ctx context.Context, doc *document.Document, base Version, message string) (Version, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshalling document: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	if base != "" {
		headers.Set("If-Match", string(base))
	}
	if message != "" {
		headers.Set("X-Commit-Message", message)
	}
	sum := md5.Sum(data)
	headers.Set("Content-MD5", base64.StdEncoding.EncodeToString(sum[:]))

	resp, err := b.request(ctx, http.MethodPut, headers, data)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return versionFromResponse(resp, data), nil
	case http.StatusConflict, http.StatusPreconditionFailed:
		return "", fmt.Errorf("saving document at revision %q: %w", base, ErrConflict)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("saving document: %w: status %d", ErrAuth, resp.StatusCode)
	default:
		return "", fmt.Errorf("saving document: %w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}

func (b *BlobBackend) request(ctx context.Context, method string, headers http.Header, body []byte) (*http.Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, b.url.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if b.username != "" {
		req.SetBasicAuth(b.username, b.password)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, b.url, ErrUnavailable, err)
	}
	return resp, nil
}

// versionFromResponse prefers the server-issued ETag and falls back to
// a digest of the content so the token is never inferred from clocks.
func versionFromResponse(resp *http.Response, body []byte) Version {
	if etag := strings.Trim(resp.Header.Get("ETag"), `"`); etag != "" {
		return Version(etag)
	}
	sum := md5.Sum(body)
	return Version(hex.EncodeToString(sum[:]))
}
