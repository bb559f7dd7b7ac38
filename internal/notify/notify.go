package notify

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Format tells the transport how to render the message text.
type Format int

const (
	FormatPlain Format = iota
	FormatHTML
)

// Notifier delivers a message to a destination (chat id, channel...).
// Delivery is best effort: callers log the error and never retry.
type Notifier interface {
	Send(ctx context.Context, destination, text string, format Format) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, destination, text string, format Format) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, destination, text, format))
	}
	return err
}

// Nop stands in when no transport is configured, so the monitor keeps running
// and messages still show up in the logs.
type Nop struct {
	Logger *zap.Logger
}

func (n Nop) Send(_ context.Context, destination, text string, _ Format) error {
	if n.Logger != nil {
		n.Logger.Warn("notifier_disabled",
			zap.String("destination", destination),
			zap.String("text", text),
		)
	}
	return nil
}
