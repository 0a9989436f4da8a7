package images

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// SizeHint is target size of the displayed image in pixels, zero dimension
// means "any".
type SizeHint struct {
	Width  int
	Height int
}

func (s SizeHint) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Handle is a pending or completed image load. Until load completes and when
// it fails Image returns placeholder.
type Handle struct {
	url         string
	placeholder image.Image
	done        chan struct{}

	mu     sync.RWMutex
	img    image.Image
	format string
	size   int
	err    error
}

func newHandle(url string, placeholder image.Image) *Handle {
	return &Handle{url: url, placeholder: placeholder, done: make(chan struct{})}
}

func (h *Handle) finish(img image.Image, format string, size int, err error) {
	h.mu.Lock()
	h.img, h.format, h.size, h.err = img, format, size, err
	h.mu.Unlock()
	close(h.done)
}

func (h *Handle) URL() string {
	return h.url
}

// Done is closed when load completes either way.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Image returns loaded image or placeholder.
func (h *Handle) Image() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.img != nil {
		return h.img
	}
	return h.placeholder
}

// Placeholder returns image shown while loading and after failure.
func (h *Handle) Placeholder() image.Image {
	return h.placeholder
}

// Err returns load error, nil while pending.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Format returns name of decoded format ("png", "svg" and so on).
func (h *Handle) Format() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.format
}

// Size returns number of source bytes.
func (h *Handle) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Wait blocks until load completes or context is canceled.
func (h *Handle) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-h.done:
		return h.Image(), h.Err()
	case <-ctx.Done():
		return h.placeholder, ctx.Err()
	}
}
