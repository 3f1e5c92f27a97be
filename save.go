package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bitop-dev/imagegen/openai"
)

const maxParallelSaves = 4

// Save writes every image of the response into dir, creating it when missing,
// and returns the written paths in response order. URL images are downloaded
// with the default client's HTTP client.
func (r *ImageResponse) Save(ctx context.Context, dir string) ([]string, error) {
	return r.SaveWith(ctx, openai.Default(), dir)
}

// SaveWith is Save using c's HTTP client for downloads.
func (r *ImageResponse) SaveWith(ctx context.Context, c *openai.Client, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, imageSaveErr(err)
	}
	if len(r.Data) == 0 {
		return nil, nil
	}

	rc := resty.New()
	if c != nil && c.Config().HTTPClient != nil {
		// resty installs its own transport on a client without one; keep
		// the caller's client untouched.
		hc := *c.Config().HTTPClient
		rc = resty.NewWithClient(&hc)
	}

	names := downloadNames(r.Data)
	paths := make([]string, len(r.Data))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSaves)
	for i, d := range r.Data {
		g.Go(func() error {
			p, err := saveImage(gctx, rc, dir, names[i], d)
			if err != nil {
				return err
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func saveImage(ctx context.Context, rc *resty.Client, dir, name string, d ImageData) (string, error) {
	switch {
	case d.B64JSON != "":
		return saveB64(dir, d.B64JSON)
	case d.URL != "":
		return download(ctx, rc, filepath.Join(dir, name), d.URL)
	default:
		return "", &ImageSaveError{Message: "image has neither url nor b64_json"}
	}
}

func saveB64(dir, b64 string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", &ImageSaveError{Message: fmt.Sprintf("decode b64_json: %v", err), Cause: err}
	}
	ext := mimetype.Detect(b).Extension()
	if ext == "" {
		ext = ".png"
	}
	target := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(target, b, 0o644); err != nil {
		return "", imageSaveErr(err)
	}
	return target, nil
}

func download(ctx context.Context, rc *resty.Client, target, rawURL string) (string, error) {
	resp, err := rc.R().SetContext(ctx).SetOutput(target).Get(rawURL)
	if err != nil {
		_ = os.Remove(target)
		return "", &ImageSaveError{Message: fmt.Sprintf("download %s: %v", rawURL, err), Cause: err}
	}
	if resp.IsError() {
		_ = os.Remove(target)
		return "", &ImageSaveError{Message: fmt.Sprintf("download %s: status %d", rawURL, resp.StatusCode())}
	}
	return target, nil
}

// downloadNames picks a file name for every URL image. Names repeated within
// the response are replaced by random ones so parallel downloads never share
// a target.
func downloadNames(data []ImageData) []string {
	names := make([]string, len(data))
	seen := make(map[string]bool, len(data))
	for i, d := range data {
		if d.URL == "" {
			continue
		}
		name := downloadName(d.URL)
		if seen[name] {
			ext := filepath.Ext(name)
			if ext == "" {
				ext = ".png"
			}
			name = uuid.NewString() + ext
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// downloadName keeps the URL's file name and falls back to a random one.
func downloadName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != ".." && name != "/" {
			return name
		}
	}
	return uuid.NewString() + ".png"
}
