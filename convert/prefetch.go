package convert

import (
	"context"
	"net/url"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"htmlview/images"
	"htmlview/view"
)

// collectImages returns image descriptors of the tree in document order,
// figure images included.
func collectImages(root view.View) []view.Image {
	var res []view.Image
	view.Walk(root, func(v view.View, _ int) {
		if img, ok := v.(view.Image); ok {
			res = append(res, img)
		}
	})
	return res
}

// resolveURL makes image reference absolute. Relative references are
// resolved against base, without base they are left alone.
func resolveURL(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		return u.String(), true
	}
	if base == nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// fileBase returns file URL of the source, relative references resolve
// against it.
func fileBase(path string) *url.URL {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
}

// prefetch loads all document images through resolver and waits for
// results. Failures are reported but never stop processing, host would show
// placeholders for them.
func prefetch(ctx context.Context, res *images.Resolver, doc *view.Document, base *url.URL, log *zap.Logger) (loaded, failed int) {
	var handles []*images.Handle
	for _, img := range collectImages(doc.Root) {
		u, ok := resolveURL(base, img.URL)
		if !ok {
			log.Debug("Image reference could not be resolved", zap.String("url", img.URL))
			failed++
			continue
		}
		handles = append(handles, res.Load(ctx, u, images.SizeHint{}))
	}

	var total uint64
	for _, h := range handles {
		if _, err := h.Wait(ctx); err != nil {
			log.Warn("Unable to load image, placeholder will be shown", zap.String("url", h.URL()), zap.Error(err))
			failed++
			continue
		}
		loaded++
		total += uint64(h.Size())
		log.Debug("Image prefetched",
			zap.String("url", h.URL()),
			zap.String("format", h.Format()),
			zap.String("size", humanize.Bytes(uint64(h.Size()))))
	}
	if loaded+failed > 0 {
		log.Info("Images prefetched", zap.Int("loaded", loaded), zap.Int("failed", failed), zap.String("total", humanize.Bytes(total)))
	}
	return loaded, failed
}
