package preload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// headerLimit caps how much of a remote body is read while decoding image
// dimensions.
const headerLimit = 1 << 20

var imageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ErrEmptyRef is returned for blank media references.
var ErrEmptyRef = errors.New("empty media reference")

func isImage(ref string) bool {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	return imageExt[strings.ToLower(filepath.Ext(ref))]
}

// FileProber probes local files. Images must decode their header; any other
// file only needs to open.
type FileProber struct{}

// Probe implements Prober.
func (FileProber) Probe(ctx context.Context, ref string) (int64, error) {
	if strings.TrimSpace(ref) == "" {
		return 0, ErrEmptyRef
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path := strings.TrimPrefix(ref, "file://")
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	if isImage(path) {
		if _, _, err := image.DecodeConfig(f); err != nil {
			return 0, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return info.Size(), nil
}

// HTTPProber fetches remote references.
type HTTPProber struct {
	Client *http.Client
}

// Probe implements Prober.
func (p HTTPProber) Probe(ctx context.Context, ref string) (int64, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("GET %s: %s", ref, resp.Status)
	}
	counter := &countingReader{r: io.LimitReader(resp.Body, headerLimit)}
	if isImage(ref) || strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		if _, _, err := image.DecodeConfig(counter); err != nil {
			return 0, fmt.Errorf("decoding %s: %w", ref, err)
		}
	} else if _, err := io.Copy(io.Discard, counter); err != nil {
		return 0, err
	}
	if resp.ContentLength >= 0 {
		return resp.ContentLength, nil
	}
	return counter.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// MultiProber dispatches on the reference scheme.
type MultiProber struct {
	File Prober
	HTTP Prober
}

// NewMultiProber returns a prober for local paths and http(s) URLs.
func NewMultiProber(client *http.Client) MultiProber {
	return MultiProber{File: FileProber{}, HTTP: HTTPProber{Client: client}}
}

// Probe implements Prober.
func (m MultiProber) Probe(ctx context.Context, ref string) (int64, error) {
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return m.HTTP.Probe(ctx, ref)
	}
	return m.File.Probe(ctx, ref)
}
