package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/notify"
)

// Inbound is one message pulled from the command source.
type Inbound struct {
	SenderID string
	Text     string
}

// Responder produces a reply for command text.
type Responder interface {
	Handle(text string) string
}

// Dispatcher gates inbound messages on the authorized sender and delivers
// the reply back to that sender.
type Dispatcher struct {
	AuthorizedID string
	Responder    Responder
	Notifier     notify.Notifier
	Logger       *zap.Logger
}

func NewDispatcher(authorizedID string, r Responder, n notify.Notifier, logger *zap.Logger) *Dispatcher {
	if n == nil {
		n = notify.Nop{Logger: logger}
	}
	return &Dispatcher{AuthorizedID: authorizedID, Responder: r, Notifier: n, Logger: logger}
}

// Dispatch handles one inbound item. Messages from anyone other than the
// authorized id are dropped without reaching the Responder.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) {
	if d.AuthorizedID == "" || in.SenderID != d.AuthorizedID {
		d.Logger.Debug("command_ignored", zap.String("sender", in.SenderID))
		return
	}

	reply := d.Responder.Handle(in.Text)
	d.Logger.Info("command_handled",
		zap.String("sender", in.SenderID),
		zap.Stringer("command", Parse(in.Text)),
	)
	if err := d.Notifier.Send(ctx, in.SenderID, reply, notify.FormatHTML); err != nil {
		d.Logger.Warn("command_reply_failed", zap.String("sender", in.SenderID), zap.Error(err))
	}
}
