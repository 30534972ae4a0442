package application

import "context"

// Notifier delivers transactional messages out-of-band. Send is
// fire-and-forget: implementations log failures and never retry, and a
// failed send does not roll back the operation that preceded it.
type Notifier interface {
	Send(ctx context.Context, to, template string, data map[string]any)
}

// NopNotifier discards every message. Used when mail sending is disabled
// and in tests.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, string, string, map[string]any) {}
