// Package controllers holds the per-screen view-state: loading flags,
// success/error banners, bound form fields, and the orchestration of
// store calls behind each screen. Controllers never patch local state
// after a mutation; they re-fetch, so post-mutation reads always reflect
// the store.
package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"kharcha/internal/log"
	"kharcha/internal/store"
)

var (
	// ErrBusy means the screen already has its own call in flight. The
	// triggering control stays disabled until that call resolves.
	ErrBusy = errors.New("screen busy")

	// ErrClosed means the screen was unmounted; late work is discarded.
	ErrClosed = errors.New("screen closed")
)

// Clock supplies "now"; tests substitute a fixed one.
type Clock func() time.Time

// BannerKind distinguishes the two banner styles.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is a transient notice shown after an operation completes. It
// auto-clears after a TTL or on the next user action.
type Banner struct {
	Kind    BannerKind
	Message string
}

// Options configures screen mechanics shared by every controller.
type Options struct {
	Now         Clock
	BannerTTL   time.Duration
	CallTimeout time.Duration
	Logger      *log.Logger

	// Parent bounds every screen's lifetime, so application shutdown
	// cancels in-flight calls. Defaults to context.Background().
	Parent context.Context
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Parent == nil {
		o.Parent = context.Background()
	}
	if o.BannerTTL <= 0 {
		o.BannerTTL = 3 * time.Second
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = 10 * time.Second
	}
	if o.Logger == nil {
		o.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentController)
	}
	return o
}

// screen is the state every controller embeds. Its context spans the
// screen's lifetime; Close cancels it so in-flight calls are abandoned,
// and the generation counter makes sure a late response never lands on a
// screen that moved on.
type screen struct {
	mu     sync.Mutex
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	loading bool
	closed  bool
	gen     uint64

	banner    Banner
	bannerAt  time.Time
	hasBanner bool
}

func newScreen(opts Options) screen {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(opts.Parent)
	return screen{opts: opts, ctx: ctx, cancel: cancel}
}

// begin marks the screen loading and hands back a call context bounded by
// both the screen lifetime and the per-call timeout. Every user action
// clears the current banner.
func (s *screen) begin() (context.Context, context.CancelFunc, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, 0, ErrClosed
	}
	if s.loading {
		return nil, nil, 0, ErrBusy
	}
	s.loading = true
	s.gen++
	s.hasBanner = false
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.CallTimeout)
	return ctx, cancel, s.gen, nil
}

// finish reports whether the outcome of call gen may be applied. It
// returns false when the screen closed or superseded the call meanwhile.
func (s *screen) finish(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.loading = false
	}
	return !s.closed && s.gen == gen
}

// Loading reports whether the screen has an unresolved call of its own.
func (s *screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Banner returns the current notice, if one is set and still fresh.
func (s *screen) Banner() (Banner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBanner {
		return Banner{}, false
	}
	if s.opts.Now().Sub(s.bannerAt) > s.opts.BannerTTL {
		s.hasBanner = false
		return Banner{}, false
	}
	return s.banner, true
}

func (s *screen) setBanner(kind BannerKind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.banner = Banner{Kind: kind, Message: msg}
	s.bannerAt = s.opts.Now()
	s.hasBanner = true
}

// Close unmounts the screen: in-flight calls are cancelled and whatever
// arrives afterwards is discarded.
func (s *screen) Close() {
	s.mu.Lock()
	s.closed = true
	s.loading = false
	s.hasBanner = false
	s.mu.Unlock()
	s.cancel()
}

// reportError surfaces an operation failure. Unauthorized passes through
// untouched as the redirect-to-login signal; everything else becomes an
// error banner.
func (s *screen) reportError(op string, err error) error {
	if errors.Is(err, store.ErrUnauthorized) {
		return err
	}
	s.opts.Logger.Error("Operation failed", log.FieldOperation, op, log.FieldError, err)
	s.setBanner(BannerError, op+" failed")
	return err
}
