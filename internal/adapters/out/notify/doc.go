// Package notify delivers cancellation notifications.
//
// KafkaSink publishes each notification as a JSON message keyed by recipient, LogSink
// writes it to the service log. Dispatcher wraps either one: it queues notifications,
// hands them to a fixed set of workers and retries failed deliveries with exponential
// backoff, so a slow or unavailable transport never holds up a committed command.
package notify
