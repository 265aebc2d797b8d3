package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/corevessel/internal/logger"
)

// ErrTimeout is reported for a load that did not finish before the deadline.
var ErrTimeout = errors.New("texture load timed out")

// Request names one texture and where to read it from.
type Request struct {
	Name string
	Path string
}

// Result is the outcome of one request. Image is nil when Err is set.
type Result struct {
	Name  string
	Path  string
	Image *image.RGBA
	Err   error
}

// Loader fetches and decodes textures in parallel and hands the decoded
// images to the render thread through Poll. Every request produces exactly
// one Result.
type Loader struct {
	requests []Request
	timeout  time.Duration
	results  chan Result
	fetch    func(path string) (*image.RGBA, error)
	cancel   context.CancelFunc
	started  bool
}

// NewLoader prepares a loader. A non-positive timeout disables the deadline.
func NewLoader(requests []Request, timeout time.Duration) *Loader {
	return &Loader{
		requests: requests,
		timeout:  timeout,
		results:  make(chan Result, len(requests)),
		fetch:    DecodeFile,
	}
}

// Expected returns the number of results the loader will deliver.
func (l *Loader) Expected() int {
	return len(l.requests)
}

// Start launches the loads. It returns immediately.
func (l *Loader) Start(ctx context.Context) {
	if l.started {
		return
	}
	l.started = true

	if l.timeout > 0 {
		ctx, l.cancel = context.WithTimeout(ctx, l.timeout)
	} else {
		ctx, l.cancel = context.WithCancel(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	go func() {
		for _, req := range l.requests {
			g.Go(func() error {
				l.results <- l.load(gctx, req)
				return nil
			})
		}
		_ = g.Wait()
		l.cancel()
	}()
}

// Stop abandons outstanding loads.
func (l *Loader) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
}

// Poll returns the results that have arrived since the last call without
// blocking.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

func (l *Loader) load(ctx context.Context, req Request) Result {
	res := Result{Name: req.Name, Path: req.Path}

	type decoded struct {
		img *image.RGBA
		err error
	}
	done := make(chan decoded, 1)
	start := time.Now()

	go func() {
		img, err := l.fetch(req.Path)
		done <- decoded{img, err}
	}()

	select {
	case d := <-done:
		res.Image, res.Err = d.img, d.err
	case <-ctx.Done():
		res.Err = fmt.Errorf("%s: %w", req.Path, ErrTimeout)
	}

	if res.Err != nil {
		logger.Warn("texture load failed", zap.String("name", req.Name), zap.Error(res.Err))
	} else {
		b := res.Image.Bounds()
		logger.Debug("texture decoded",
			zap.String("name", req.Name),
			zap.Int("width", b.Dx()),
			zap.Int("height", b.Dy()),
			zap.Duration("took", time.Since(start)))
	}
	return res
}
