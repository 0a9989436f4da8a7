// Package images resolves image URLs of rendered documents into bitmaps.
// Loads are asynchronous: caller gets a handle which shows placeholder until
// image arrives and keeps showing it when load fails. There are no retries.
package images

import (
	"context"
	"errors"
	"image"
	"net/http"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"htmlview/config"
	"htmlview/utils/lru"
)

var (
	// ErrUnsupported is returned for URL schemes and content which could not
	// be turned into image.
	ErrUnsupported = errors.New("unsupported image")
	// ErrTooLarge is returned when image source exceeds configured limit.
	ErrTooLarge = errors.New("image is too large")
	// ErrDisabled is returned by every load when image loading is disabled.
	ErrDisabled = errors.New("image loading is disabled")
)

// Resolver loads images concurrently, never more than configured number at
// once. Identical concurrent requests share a single load, successfully
// loaded images are remembered.
type Resolver struct {
	cfg     *config.ImagesConfig
	opacity float64
	client  *http.Client
	store   *Store
	log     *zap.Logger

	sem chan struct{}
	wg  sync.WaitGroup
	// shared loads outlive their callers, only Close stops them
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[string]*Handle
	loaded  *lru.Cache[string, *Handle]
}

// NewResolver creates resolver, opacity is used for placeholders. When cache
// path is configured fetched bytes are kept in SQLite database there.
func NewResolver(cfg *config.ImagesConfig, opacity float64, log *zap.Logger) (*Resolver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{
		cfg:     cfg,
		opacity: opacity,
		client:  &http.Client{Timeout: cfg.Timeout},
		log:     log,
		sem:     make(chan struct{}, max(cfg.Concurrency, 1)),
		pending: make(map[string]*Handle),
		loaded:  lru.New[string, *Handle](cfg.Cache.Entries, nil),
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	if len(cfg.Cache.Path) > 0 {
		store, err := OpenStore(cfg.Cache.Path)
		if err != nil {
			r.cancel()
			return nil, err
		}
		r.store = store
	}
	return r, nil
}

// Close cancels loads in flight, waits for them and closes persistent store.
func (r *Resolver) Close() error {
	r.cancel()
	r.wg.Wait()
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// Load starts loading image or joins load already in progress. Empty hint
// dimensions are taken from configuration. Load is shared, so canceling ctx
// does not stop it: callers stop waiting with Handle.Wait instead. Values of
// ctx are kept.
func (r *Resolver) Load(ctx context.Context, url string, hint SizeHint) *Handle {
	if hint.Width == 0 && hint.Height == 0 {
		hint = SizeHint{Width: r.cfg.Width, Height: r.cfg.Height}
	}
	key := url + "@" + hint.String()

	r.mu.Lock()
	if h, ok := r.loaded.Get(key); ok {
		r.mu.Unlock()
		return h
	}
	if h, ok := r.pending[key]; ok {
		r.mu.Unlock()
		return h
	}
	h := newHandle(url, Placeholder(hint, r.opacity))
	if !r.cfg.Enable {
		r.mu.Unlock()
		h.finish(nil, "", 0, ErrDisabled)
		return h
	}
	r.pending[key] = h
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		stop := context.AfterFunc(r.ctx, cancel)
		defer func() {
			stop()
			cancel()
		}()

		img, format, size, err := r.resolve(loadCtx, url, hint)
		h.finish(img, format, size, err)

		r.mu.Lock()
		delete(r.pending, key)
		if err == nil {
			r.loaded.Add(key, h)
		}
		r.mu.Unlock()
	}()
	return h
}

func (r *Resolver) resolve(ctx context.Context, url string, hint SizeHint) (image.Image, string, int, error) {
	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return nil, "", 0, ctx.Err()
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	data, err := r.source(ctx, url)
	if err != nil {
		r.log.Debug("Unable to load image", zap.String("url", url), zap.Error(err))
		return nil, "", 0, err
	}
	img, format, err := decode(data, hint, r.cfg.Resize)
	if err != nil {
		r.log.Debug("Unable to decode image", zap.String("url", url), zap.Error(err))
		return nil, "", len(data), err
	}
	r.log.Debug("Image loaded",
		zap.String("url", url),
		zap.String("format", format),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Stringer("hint", hint),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, format, len(data), nil
}

// source returns image bytes from persistent store or fetches them.
func (r *Resolver) source(ctx context.Context, url string) ([]byte, error) {
	if r.store != nil {
		data, found, err := r.store.Get(url)
		if err != nil {
			r.log.Warn("Image store is not usable", zap.Error(err))
		} else if found {
			return data, nil
		}
	}

	data, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if r.store != nil {
		if err := r.store.Put(url, data); err != nil {
			r.log.Warn("Unable to store image", zap.String("url", url), zap.Error(err))
		}
	}
	return data, nil
}
