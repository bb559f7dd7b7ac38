package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/command"
	"github.com/hamed0406/uptimebot/internal/notify"
)

var _ notify.Notifier = (*Client)(nil)

// Client is both the outbound notifier and the inbound command source.
type Client struct {
	bot    *bot.Bot
	logger *zap.Logger

	// set by Listen before polling starts
	onInbound func(context.Context, command.Inbound)
}

// New builds a client for token. serverURL overrides the Bot API endpoint
// when non-empty. No request is made until Send or Listen.
func New(token, serverURL string, logger *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, errors.New("telegram: empty bot token")
	}
	c := &Client{logger: logger}

	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithDefaultHandler(c.handleUpdate),
		bot.WithErrorsHandler(func(err error) {
			logger.Warn("telegram_poll_error", zap.Error(err))
		}),
	}
	if serverURL != "" {
		opts = append(opts, bot.WithServerURL(serverURL))
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	c.bot = b
	return c, nil
}

func (c *Client) Send(ctx context.Context, destination, text string, format notify.Format) error {
	if destination == "" {
		return errors.New("telegram: empty chat id")
	}
	params := &bot.SendMessageParams{
		ChatID: destination,
		Text:   text,
	}
	if format == notify.FormatHTML {
		params.ParseMode = models.ParseModeHTML
	}
	if _, err := c.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Listen long-polls for updates and hands each text message to fn. It blocks
// until ctx is cancelled.
func (c *Client) Listen(ctx context.Context, fn func(context.Context, command.Inbound)) {
	c.onInbound = fn
	c.logger.Info("telegram_listen_started")
	c.bot.Start(ctx)
	c.logger.Info("telegram_listen_stopped")
}

func (c *Client) handleUpdate(ctx context.Context, _ *bot.Bot, u *models.Update) {
	in, ok := inboundFromUpdate(u)
	if !ok || c.onInbound == nil {
		return
	}
	c.onInbound(ctx, in)
}

// inboundFromUpdate keeps only text messages. The chat id identifies the
// sender, since replies go back to the same chat.
func inboundFromUpdate(u *models.Update) (command.Inbound, bool) {
	if u == nil || u.Message == nil || u.Message.Text == "" {
		return command.Inbound{}, false
	}
	return command.Inbound{
		SenderID: strconv.FormatInt(u.Message.Chat.ID, 10),
		Text:     u.Message.Text,
	}, true
}
