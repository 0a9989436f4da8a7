package convert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"htmlview/common"
	"htmlview/config"
	"htmlview/images"
	"htmlview/view"
)

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://example.com/docs/page.html")

	tests := []struct {
		name   string
		base   *url.URL
		ref    string
		want   string
		wantOK bool
	}{
		{"absolute", base, "https://cdn.example.com/a.png", "https://cdn.example.com/a.png", true},
		{"relative", base, "img/a.png", "https://example.com/docs/img/a.png", true},
		{"parent", base, "../a.png", "https://example.com/a.png", true},
		{"rooted", base, "/a.png", "https://example.com/a.png", true},
		{"relative without base", nil, "a.png", "", false},
		{"data without base", nil, "data:image/png;base64,AAAA", "data:image/png;base64,AAAA", true},
		{"malformed", base, "http://[::1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveURL(tt.base, tt.ref)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("resolveURL() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFileBase(t *testing.T) {
	dir := t.TempDir()
	base := fileBase(filepath.Join(dir, "page.html"))
	if base == nil {
		t.Fatal("fileBase() = nil")
	}
	got, ok := resolveURL(base, "a.png")
	if !ok {
		t.Fatal("resolveURL() failed")
	}
	want := "file://" + filepath.ToSlash(filepath.Join(dir, "a.png"))
	if got != want {
		t.Errorf("resolved = %q, want %q", got, want)
	}
}

func TestCollectImages(t *testing.T) {
	root := view.Container{Children: []view.View{
		view.Image{URL: "a.png"},
		view.Container{Children: []view.View{
			view.Figure{Image: &view.Image{URL: "b.png"}, Caption: "b", HasCaption: true},
			view.Figure{},
		}},
		view.TextBlock{Spans: []view.Span{view.Plain("text")}},
		view.Image{URL: "c.png"},
	}}

	imgs := collectImages(root)
	if len(imgs) != 3 {
		t.Fatalf("collectImages() returned %d images, want 3", len(imgs))
	}
	for i, want := range []string{"a.png", "b.png", "c.png"} {
		if imgs[i].URL != want {
			t.Errorf("image %d = %q, want %q", i, imgs[i].URL, want)
		}
	}
}

func TestPrefetch(t *testing.T) {
	dir := t.TempDir()
	if err := writePNG(filepath.Join(dir, "local.png")); err != nil {
		t.Fatalf("unable to write image: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(testPNGHead())
	}))
	defer srv.Close()

	cfg := &config.ImagesConfig{
		Enable:      true,
		Concurrency: 2,
		Timeout:     5 * time.Second,
		MaxBytes:    1 << 20,
		Resize:      common.ImageResizeModeNone,
		Cache:       config.ImageCacheConfig{Entries: 8},
	}
	res, err := images.NewResolver(cfg, 0.2, testLogger(t))
	if err != nil {
		t.Fatalf("unable to create resolver: %v", err)
	}
	defer res.Close()

	doc := &view.Document{Root: view.Container{Children: []view.View{
		view.Image{URL: "local.png"},
		view.Figure{Image: &view.Image{URL: srv.URL + "/remote.png"}},
		view.Image{URL: srv.URL + "/missing.png"},
		view.Image{URL: "missing.png"},
	}}}

	core, logs := observer.New(zap.DebugLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	loaded, failed := prefetch(ctx, res, doc, fileBase(filepath.Join(dir, "page.html")), zap.New(core))
	if loaded != 2 || failed != 2 {
		t.Errorf("prefetch() = %d loaded, %d failed, want 2, 2", loaded, failed)
	}
	if n := logs.FilterMessage("Unable to load image, placeholder will be shown").Len(); n != 2 {
		t.Errorf("expected 2 warnings, got %d", n)
	}
	if n := logs.FilterMessage("Images prefetched").Len(); n != 1 {
		t.Errorf("expected summary message, got %d", n)
	}
}

func TestPrefetch_NoBase(t *testing.T) {
	cfg := &config.ImagesConfig{Enable: true, Concurrency: 1, MaxBytes: 1 << 20}
	res, err := images.NewResolver(cfg, 0.2, testLogger(t))
	if err != nil {
		t.Fatalf("unable to create resolver: %v", err)
	}
	defer res.Close()

	doc := &view.Document{Root: view.Image{URL: "images/a.png"}}
	loaded, failed := prefetch(context.Background(), res, doc, nil, testLogger(t))
	if loaded != 0 || failed != 1 {
		t.Errorf("prefetch() = %d loaded, %d failed, want 0, 1", loaded, failed)
	}
}

func writePNG(path string) error {
	return os.WriteFile(path, testPNGHead(), 0644)
}
