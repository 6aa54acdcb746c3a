package event

import (
	"context"
	"sync"
	"time"

	"github.com/Eloquas/Eloverit-sub002/internal/logger"
)

type retryItem struct {
	event     Event
	handlers  []Handler // still owed the event; nil means the whole bus
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher publishes through a Bus and retries failures in the
// background with exponential backoff. Exhausted events go to the dead-letter file.
// When the bus is a Dispatcher only the failing handlers are retried, so
// healthy subscribers see each event once.
type ResilientPublisher struct {
	bus        Bus
	maxRetries int
	retryDelay time.Duration
	retryQueue chan retryItem
	deadLetter *DeadLetterWriter

	wg           sync.WaitGroup
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		retryQueue: make(chan retryItem, RetryQueueBufferSize),
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry never blocks on a failing bus and never returns an error.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	pending, err := rp.deliver(ctx, evt, nil)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	select {
	case <-rp.shutdown:
		log.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type)
		rp.writeDeadLetter(evt, 1, err)
		return
	default:
	}

	item := retryItem{
		event:     evt,
		handlers:  pending,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
		lastErr:   err,
	}

	select {
	case rp.retryQueue <- item:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", evt.Type)
		rp.writeDeadLetter(evt, 1, err)
	}
}

// Publish satisfies Bus for callers that want synchronous semantics.
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	log := logger.FromContext(context.Background())

	for {
		select {
		case <-rp.shutdown:
			rp.drain()
			return
		case item := <-rp.retryQueue:
			if wait := time.Until(item.nextRetry); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-rp.shutdown:
					timer.Stop()
					rp.writeDeadLetter(item.event, item.attempt, item.lastErr)
					rp.drain()
					return
				}
			}

			pending, err := rp.deliver(context.Background(), item.event, item.handlers)
			if err == nil {
				log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempt)
				continue
			}

			item.handlers = pending
			item.attempt++
			item.lastErr = err
			if item.attempt > rp.maxRetries {
				log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempt-1)
				rp.writeDeadLetter(item.event, item.attempt-1, err)
				continue
			}

			log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempt, "error", err)
			item.nextRetry = time.Now().Add(CalculateRetryDelay(rp.retryDelay, item.attempt))
			select {
			case rp.retryQueue <- item:
			default:
				rp.writeDeadLetter(item.event, item.attempt, err)
			}
		}
	}
}

// deliver sends evt to handlers, or to the whole bus when handlers is nil.
// It returns the handlers that still need the event.
func (rp *ResilientPublisher) deliver(ctx context.Context, evt Event, handlers []Handler) ([]Handler, error) {
	var failed []Failure
	switch {
	case handlers != nil:
		failed = runHandlers(ctx, evt, handlers)
	default:
		d, ok := rp.bus.(Dispatcher)
		if !ok {
			return nil, rp.bus.Publish(ctx, evt)
		}
		failed = d.Dispatch(ctx, evt)
	}
	if len(failed) == 0 {
		return nil, nil
	}

	pending := make([]Handler, len(failed))
	for i, f := range failed {
		pending[i] = f.Handler
	}
	return pending, joinFailures(evt.Type, failed)
}

func (rp *ResilientPublisher) drain() {
	for {
		select {
		case item := <-rp.retryQueue:
			rp.writeDeadLetter(item.event, item.attempt, item.lastErr)
		default:
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(evt Event, attempts int, err error) {
	if werr := rp.deadLetter.Write(evt, attempts, err); werr != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "event_type", evt.Type, "error", werr)
	}
}

// Shutdown stops the retry worker, dead-lettering anything still queued.
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.shutdownOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return rp.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
