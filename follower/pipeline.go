package follower

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/line-follower-sim/line-follower-sim/vision"
)

// Pipeline runs the follower loop: a capture goroutine feeds frames through
// a bounded channel to a processing loop running mask, edges, segments, and
// finally the steering command. When the channel is full the oldest queued
// frame is dropped so the view stays live instead of falling behind the
// camera.
type Pipeline struct {
	// Tunable before Run.
	Steering Steering
	Seed     int64
	QueueLen int
	Sink     func(Record)

	source  Source
	cfg     atomic.Pointer[Config]
	dropped atomic.Int64
}

// NewPipeline returns a pipeline reading from src with the given tuning.
func NewPipeline(src Source, cfg Config) *Pipeline {
	p := &Pipeline{
		Steering: DefaultSteering(),
		Seed:     1,
		QueueLen: 4,
		source:   src,
	}
	p.cfg.Store(&cfg)
	return p
}

// Apply swaps the tuning config. Safe while Run is in flight; the next
// frame picks it up.
func (p *Pipeline) Apply(cfg Config) {
	p.cfg.Store(&cfg)
}

// Config returns the current tuning.
func (p *Pipeline) Config() Config {
	return *p.cfg.Load()
}

// Dropped reports frames discarded so far because processing fell behind.
func (p *Pipeline) Dropped() int {
	return int(p.dropped.Load())
}

// Run pumps the source until it ends or ctx is cancelled and returns the
// run summary. Run consumes the pipeline; call it once.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	frames := make(chan image.Image, p.QueueLen)
	captureErr := make(chan error, 1)

	go func() {
		defer close(frames)
		for {
			img, err := p.source.Next(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					captureErr <- nil
				} else {
					captureErr <- err
				}
				return
			}
			p.enqueue(frames, img)
		}
	}()

	var summary Summary
	var errSum float64
	n := 0
	for img := range frames {
		if ctx.Err() != nil {
			break
		}
		rec := p.process(n, img)
		n++
		summary.add(rec, &errSum)
		if p.Sink != nil {
			p.Sink(rec)
		}
	}

	err := <-captureErr
	summary.Dropped = int(p.dropped.Load())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return summary, fmt.Errorf("frame source: %w", err)
	}
	return summary, ctx.Err()
}

// enqueue delivers img, evicting the oldest queued frame when the channel
// is full. It never blocks indefinitely: either the send lands or a slot is
// freed by eviction.
func (p *Pipeline) enqueue(frames chan image.Image, img image.Image) {
	for {
		select {
		case frames <- img:
			return
		default:
			select {
			case <-frames:
				p.dropped.Add(1)
			default:
			}
		}
	}
}

// process runs the vision stages over one frame under the current tuning.
func (p *Pipeline) process(n int, img image.Image) Record {
	start := time.Now()
	cfg := *p.cfg.Load()

	gray := vision.Grayscale(img)
	lo, hi := cfg.MaskBounds()
	mask := vision.InRange(gray, lo, hi)
	edges := vision.Canny(mask, vision.CannyLowDefault, vision.CannyHighDefault)
	segs := vision.HoughSegments(edges, cfg.HoughParams(), p.Seed)

	lateral, heading, ok := FrameErrors(segs, gray.Bounds().Dx())
	cmd := p.Steering.Command(lateral, ok)
	if !ok {
		logrus.Debugf("frame %d: no line detected", n)
	}
	return Record{
		Frame:     n,
		ElapsedUs: time.Since(start).Microseconds(),
		Segments:  len(segs),
		Lateral:   lateral,
		Heading:   heading,
		Command:   cmd,
	}
}
