package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/etfmatcher/etfv-cli/internal/vectorconfig"
)

// DefaultTimeout bounds every HTTP call made by a Client that was not given
// its own http.Client. No operation may block indefinitely.
const DefaultTimeout = 30 * time.Second

const userAgent = "etfv-cli"

// errBodyLimit caps how much of an error response body is kept for messages.
const errBodyLimit = 8192

// Options configures a Client. The zero value means production defaults:
// the public etfmatcher.com data endpoint and its remote TOML manifest.
type Options struct {
	// BaseURL overrides the fixed data endpoint. Must end in a path under
	// which resources are served; a trailing slash is optional.
	BaseURL string

	// ManifestURL overrides where the catalog manifest is fetched from.
	// Default: ManifestFile joined to the effective base URL.
	ManifestURL string

	// Timeout bounds each HTTP call. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient replaces the internally constructed client entirely.
	HTTPClient *http.Client

	// Source replaces the remote manifest as the catalog origin. Useful for
	// tests and embedded catalogs.
	Source vectorconfig.Source
}

// Client resolves catalog entries and fetches vector-collection resources.
//
// A Client holds no session state between calls beyond the read-only catalog,
// which is materialized at most once; concurrent use needs no coordination.
//
// Whole-payload calls (Bytes and everything built on it) are bounded by the
// configured whole-exchange timeout. Download streams arbitrarily large
// collections, where a whole-exchange cap would abort transfers that are
// still making progress, so it is bounded only by ctx; callers must pass a
// context with a deadline.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	loader  *vectorconfig.Loader
}

// NewClient returns a Client configured by opts.
func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = BaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	stream := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
		stream = &http.Client{}
	}

	c := &Client{baseURL: base, http: hc, stream: stream}

	src := opts.Source
	if src == nil {
		manifestURL := opts.ManifestURL
		if manifestURL == "" {
			manifestURL = joinURL(base, ManifestFile)
		}
		src = &vectorconfig.RemoteSource{ManifestURL: manifestURL, Fetch: c.Bytes}
	}
	c.loader = vectorconfig.NewLoader(src)
	return c
}

// ResourceURL resolves a relative resource path against the client's base
// endpoint. See the package-level ResourceURL for the joining rules.
func (c *Client) ResourceURL(path string) string {
	return joinURL(c.baseURL, path)
}

// SymbolMapURL returns the download URL of the ticker symbol map under the
// client's base endpoint.
func (c *Client) SymbolMapURL() string {
	return c.ResourceURL(SymbolMapFile)
}

// Configs returns the full catalog, materializing it on first use.
func (c *Client) Configs(ctx context.Context) (vectorconfig.ConfigMap, error) {
	return c.loader.All(ctx)
}

// ConfigByKey returns the catalog record stored under key.
func (c *Client) ConfigByKey(ctx context.Context, key string) (vectorconfig.VectorConfig, error) {
	return c.loader.ByKey(ctx, key)
}

// Bytes issues a single GET against url and returns the complete response
// body. A non-2xx response yields a *StatusError; transport failures are
// returned wrapped. There are no partial results: bytes or an error.
func (c *Client) Bytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url, c.http)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response from %s: %w", url, err)
	}
	return body, nil
}

// Resource fetches pathOrURL. A fully qualified http(s) URL is fetched as-is;
// anything else is treated as a resource path relative to the base endpoint.
func (c *Client) Resource(ctx context.Context, pathOrURL string) ([]byte, error) {
	url := pathOrURL
	if !IsAbsoluteURL(pathOrURL) {
		url = c.ResourceURL(pathOrURL)
	}
	return c.Bytes(ctx, url)
}

// ConfigResource resolves key through the catalog and downloads the vector
// collection it points at. The first failure wins: catalog load, key lookup,
// then the network fetch.
func (c *Client) ConfigResource(ctx context.Context, key string) ([]byte, error) {
	cfg, err := c.ConfigByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return c.Resource(ctx, cfg.Path)
}

// SymbolMap downloads the ticker symbol map.
//
// The symbol map is published independently of the catalog, so its coverage
// may lag behind the most recently added collections; that freshness gap
// belongs to the remote publisher, not to this client.
func (c *Client) SymbolMap(ctx context.Context) ([]byte, error) {
	return c.Bytes(ctx, c.SymbolMapURL())
}

// Download streams url into the file at dest, creating or truncating it.
// When progress is non-nil it is called periodically with (downloaded, total);
// total is -1 when the server did not declare a content length.
// The number of bytes written is returned.
//
// Download is bounded by ctx's deadline, not by the client's whole-exchange
// timeout: a large collection arriving slowly must not be killed mid-stream
// just because it outlives the cap sized for small responses.
func (c *Client) Download(ctx context.Context, url, dest string, progress func(downloaded, total int64)) (int64, error) {
	resp, err := c.get(ctx, url, c.stream)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", dest, err)
	}
	defer out.Close()

	total := resp.ContentLength
	var downloaded int64
	lastReport := time.Now()
	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return downloaded, fmt.Errorf("cannot write %s: %w", dest, werr)
			}
			downloaded += int64(n)
			if progress != nil && time.Since(lastReport) > 200*time.Millisecond {
				progress(downloaded, total)
				lastReport = time.Now()
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return downloaded, fmt.Errorf("download of %s failed: %w", url, rerr)
		}
	}
	if progress != nil {
		progress(downloaded, total)
	}
	if err := out.Close(); err != nil {
		return downloaded, fmt.Errorf("cannot close %s: %w", dest, err)
	}
	return downloaded, nil
}

// get performs the GET through hc and turns non-success statuses into
// *StatusError. The caller owns resp.Body on success.
func (c *Client) get(ctx context.Context, url string, hc *http.Client) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		resp.Body.Close()
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}
