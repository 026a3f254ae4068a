package audit

import (
	"context"
	"log/slog"
)

// AsyncPublisher decouples emission from delivery: Emit enqueues and returns
// immediately, a background Run loop forwards events to the wrapped publisher.
// When the buffer is full events are dropped, not blocked on; the
// authorization flow must never wait on the audit sink.
type AsyncPublisher struct {
	next   Publisher
	inbox  chan Event
	logger *slog.Logger
}

// NewAsyncPublisher wraps next with a buffered inbox. Call Run to start
// delivery.
func NewAsyncPublisher(next Publisher, buffer int, logger *slog.Logger) *AsyncPublisher {
	return &AsyncPublisher{
		next:   next,
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

func (p *AsyncPublisher) Emit(ctx context.Context, event Event) error {
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"client_id", event.ClientID,
			"decision", string(event.Decision),
		)
		return nil
	}
}

// Run consumes the inbox until ctx is cancelled, then drains whatever is
// already buffered before returning.
func (p *AsyncPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return ctx.Err()
		case event := <-p.inbox:
			p.forward(ctx, event)
		}
	}
}

func (p *AsyncPublisher) drain() {
	for {
		select {
		case event := <-p.inbox:
			p.forward(context.Background(), event)
		default:
			return
		}
	}
}

func (p *AsyncPublisher) forward(ctx context.Context, event Event) {
	if err := p.next.Emit(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit delivery failed",
			"client_id", event.ClientID,
			"error", err.Error(),
		)
	}
}

func (p *AsyncPublisher) Close() error {
	return p.next.Close()
}
