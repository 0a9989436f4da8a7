package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// fetch returns raw image bytes for http(s), file and data URLs.
func (r *Resolver) fetch(ctx context.Context, raw string) ([]byte, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bad image url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return r.fetchHTTP(ctx, u)
	case "file":
		return r.readFile(u)
	case "data":
		return decodeDataURL(raw, r.cfg.MaxBytes)
	}
	return nil, fmt.Errorf("%w: url scheme %q", ErrUnsupported, u.Scheme)
}

func (r *Resolver) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	if len(r.cfg.UserAgent) > 0 {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}
	if len(r.cfg.Authorization) > 0 {
		req.Header.Set("Authorization", r.cfg.Authorization.Reveal())
	}
	req.Header.Set("Accept", "image/*")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch image: %s", resp.Status)
	}
	if resp.ContentLength > r.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, humanize.Bytes(uint64(resp.ContentLength)))
	}
	r.log.Debug("Fetching image", zap.Stringer("url", u), zap.String("content-type", resp.Header.Get("Content-Type")))
	return readLimited(resp.Body, r.cfg.MaxBytes)
}

func (r *Resolver) readFile(u *url.URL) ([]byte, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open image: %w", err)
	}
	defer f.Close()
	return readLimited(f, r.cfg.MaxBytes)
}

func readLimited(rd io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, limit+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %s", ErrTooLarge, humanize.Bytes(uint64(limit)))
	}
	return data, nil
}

// decodeDataURL handles "data:[<media type>][;base64],<data>".
func decodeDataURL(raw string, limit int64) ([]byte, error) {
	meta, payload, ok := strings.Cut(raw[len("data:"):], ",")
	if !ok {
		return nil, errors.New("bad data url: no data")
	}
	if int64(len(payload)) > 2*limit {
		return nil, fmt.Errorf("%w: data url", ErrTooLarge)
	}

	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		payload, err = url.PathUnescape(payload)
		if err == nil {
			data, err = base64.StdEncoding.DecodeString(strings.Join(strings.Fields(payload), ""))
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("bad data url: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: data url", ErrTooLarge)
	}
	return data, nil
}
