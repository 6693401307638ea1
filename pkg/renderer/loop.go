package renderer

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"
)

// ErrLoopRunning is returned when starting a loop that is already rendering
var ErrLoopRunning = errors.New("render loop already running")

// Progress describes how far a loop has come
type Progress struct {
	Running   bool          `json:"running"`
	RowsDone  int           `json:"rowsDone"`
	TotalRows int           `json:"totalRows"`
	Elapsed   time.Duration `json:"elapsed"`
	Remaining time.Duration `json:"remaining"` // Estimate from the mean time per row so far
	Workers   int           `json:"workers"`
}

// Fraction returns the completed share of the frame in [0, 1]
func (p Progress) Fraction() float64 {
	if p.TotalRows == 0 {
		return 0
	}
	return float64(p.RowsDone) / float64(p.TotalRows)
}

// Loop renders frames in the background one row at a time. Callers can poll the
// partially rendered image and stop between rows at any point.
type Loop struct {
	renderer *Renderer

	mu      sync.Mutex
	frame   *Frame
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time
	elapsed time.Duration // Final render time once the loop has stopped
	stats   RenderStats
	err     error
}

// NewLoop creates an idle loop over r
func NewLoop(r *Renderer) *Loop {
	return &Loop{
		renderer: r,
		frame:    NewFrame(r.config.Width, r.config.Height),
	}
}

// Renderer returns the renderer driven by the loop
func (l *Loop) Renderer() *Renderer {
	return l.renderer
}

// Start begins rendering a fresh frame. The loop stops on its own once the frame
// is complete, or earlier when ctx is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running() {
		return ErrLoopRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	frame := NewFrame(l.renderer.config.Width, l.renderer.config.Height)
	done := make(chan struct{})

	l.frame = frame
	l.cancel = cancel
	l.done = done
	l.started = time.Now()
	l.elapsed = 0
	l.stats = RenderStats{}
	l.err = nil

	logger.Infof("starting render loop for %q", l.renderer.scene.Name)
	go func() {
		defer close(done)
		defer cancel()

		stats, err := l.renderer.RenderInto(ctx, frame)

		l.mu.Lock()
		l.stats = stats
		l.err = err
		l.elapsed = time.Since(l.started)
		l.mu.Unlock()
	}()

	return nil
}

// Stop cancels the render after the rows in flight and waits for it to finish.
// Stopping an idle loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the current render ends and returns its error, which is
// the context's error when it was cancelled
func (l *Loop) Wait() error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()

	if done == nil {
		return nil
	}
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Running reports whether a render is in progress
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running()
}

func (l *Loop) running() bool {
	if l.done == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Progress returns the rows completed so far with elapsed and estimated remaining time
func (l *Loop) Progress() Progress {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := Progress{
		Running:   l.running(),
		RowsDone:  l.frame.RowsDone(),
		TotalRows: l.frame.Height,
		Workers:   l.renderer.workers,
	}

	switch {
	case p.Running:
		p.Elapsed = time.Since(l.started)
	case l.done != nil:
		p.Elapsed = l.elapsed
	}

	if p.Running && p.RowsDone > 0 {
		perRow := p.Elapsed / time.Duration(p.RowsDone)
		p.Remaining = perRow * time.Duration(p.TotalRows-p.RowsDone)
	}
	return p
}

// Stats returns the statistics of the last finished render
func (l *Loop) Stats() RenderStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Frame returns the frame being rendered, or the last one
func (l *Loop) Frame() *Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// Image returns a snapshot of the published rows
func (l *Loop) Image() *image.RGBA {
	return l.Frame().Image()
}
