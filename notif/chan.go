package notif

import "context"

// ChanEmitter delivers notifications on a channel. Used in tests and for
// the local dev server where no queue is configured.
type ChanEmitter struct {
	ch chan Notification
}

func NewChanEmitter(buffer int) *ChanEmitter {
	return &ChanEmitter{ch: make(chan Notification, buffer)}
}

func (e *ChanEmitter) Emit(ctx context.Context, n Notification) error {
	select {
	case e.ch <- n:
	default:
		// drop rather than block a request on a full buffer
	}
	return nil
}

func (e *ChanEmitter) Notifications() <-chan Notification {
	return e.ch
}
