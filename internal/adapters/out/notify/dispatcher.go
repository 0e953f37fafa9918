package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

var (
	ErrQueueFull         = errors.New("notification queue is full")
	ErrDispatcherStopped = errors.New("notification dispatcher is stopped")
)

// DispatcherConfig sizes the queue and the retry budget.
type DispatcherConfig struct {
	Workers         int
	QueueSize       int
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 10 * time.Second
	}
	return c
}

type notification struct {
	ctx       context.Context
	recipient string
	subject   string
	body      string
}

// Dispatcher is an asynchronous ports.NotificationSink in front of another sink.
// SendNotification only enqueues; delivery errors are logged by the workers.
type Dispatcher struct {
	next    ports.NotificationSink
	cfg     DispatcherConfig
	logger  *slog.Logger
	metrics *metrics.Metrics

	queue  chan notification
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a stopped dispatcher; call Start to launch the workers.
// m may be nil.
func NewDispatcher(next ports.NotificationSink, cfg DispatcherConfig, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		next:    next,
		cfg:     cfg,
		logger:  logger.With("component", "notification_dispatcher"),
		metrics: m,
		queue:   make(chan notification, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (d *Dispatcher) Start() {
	for i := range d.cfg.Workers {
		d.wg.Add(1)
		go d.work(i)
	}
	d.logger.Info("Notification dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
}

// SendNotification queues the notification without blocking. The caller's context
// values travel with it but its cancellation does not.
func (d *Dispatcher) SendNotification(ctx context.Context, recipient, subject, body string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- notification{
		ctx:       context.WithoutCancel(ctx),
		recipient: recipient,
		subject:   subject,
		body:      body,
	}:
		d.observeQueue()
		return nil
	default:
		d.count("dropped")
		return errs.NewTransientInfraError("enqueue notification", ErrQueueFull)
	}
}

// Stop refuses new notifications and waits for the queue to drain. When ctx expires
// first, pending retries are abandoned and ctx.Err() is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for n := range d.queue {
		d.observeQueue()
		d.deliver(id, n)
	}
}

func (d *Dispatcher) deliver(worker int, n notification) {
	attempts := 0
	operation := func() error {
		attempts++
		err := d.next.SendNotification(n.ctx, n.recipient, n.subject, n.body)
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.cfg.InitialInterval
	b.MaxInterval = d.cfg.MaxInterval
	b.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(d.cfg.MaxAttempts-1)),
		d.ctx,
	))
	if err != nil {
		d.count("failed")
		d.logger.WarnContext(n.ctx, "Notification delivery failed",
			"worker", worker,
			"recipient", n.recipient,
			"attempts", attempts,
			"error", err,
		)
		return
	}
	d.count("sent")
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid)
}

func (d *Dispatcher) count(result string) {
	if d.metrics != nil {
		d.metrics.Notifications.WithLabelValues(result).Inc()
	}
}

func (d *Dispatcher) observeQueue() {
	if d.metrics != nil {
		d.metrics.QueueDepth.Set(float64(len(d.queue)))
	}
}
