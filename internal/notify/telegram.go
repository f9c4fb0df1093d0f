// Package notify forwards incident events to external channels. Telegram is
// the only channel today; the bot sits behind an interface so tests can
// inject a fake.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stellarlinkco/deskmcp/internal/bus"
	"github.com/stellarlinkco/deskmcp/internal/config"
)

// TelegramBot is the subset of the bot API the notifier uses.
type TelegramBot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetSelf() tgbotapi.User
}

// tgBotWrapper wraps tgbotapi.BotAPI to implement TelegramBot
type tgBotWrapper struct {
	bot *tgbotapi.BotAPI
}

func (w *tgBotWrapper) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return w.bot.Send(c)
}

func (w *tgBotWrapper) GetSelf() tgbotapi.User {
	return w.bot.Self
}

// BotFactory creates TelegramBot instances (allows mocking)
type BotFactory func(token, apiEndpoint string, client *http.Client) (TelegramBot, error)

var defaultBotFactory BotFactory = func(token, apiEndpoint string, client *http.Client) (TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, err
	}
	return &tgBotWrapper{bot: bot}, nil
}

// TelegramNotifier consumes incident events from the bus and posts a short
// message per event to a configured chat. Send failures are logged and
// swallowed; notification is best effort.
type TelegramNotifier struct {
	cfg        config.TelegramConfig
	bot        TelegramBot
	botFactory BotFactory
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithFactory(cfg, defaultBotFactory)
}

// NewTelegramNotifierWithFactory creates a notifier with a custom bot factory (for testing)
func NewTelegramNotifierWithFactory(cfg config.TelegramConfig, factory BotFactory) (*TelegramNotifier, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	return &TelegramNotifier{
		cfg:        cfg,
		botFactory: factory,
	}, nil
}

func (n *TelegramNotifier) initBot() error {
	client := http.DefaultClient
	if n.cfg.Proxy != "" {
		proxyURL, err := url.Parse(n.cfg.Proxy)
		if err != nil {
			return fmt.Errorf("parse proxy url: %w", err)
		}
		client = &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		}
	}

	bot, err := n.botFactory(n.cfg.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	n.bot = bot
	log.Printf("[notify] telegram authorized as @%s", bot.GetSelf().UserName)
	return nil
}

// Start connects the bot and begins consuming events. It returns once the
// consumer goroutine is running.
func (n *TelegramNotifier) Start(ctx context.Context, events *bus.Bus) error {
	if err := n.initBot(); err != nil {
		return err
	}

	ctx, n.cancel = context.WithCancel(ctx)
	n.done = make(chan struct{})
	ch := events.Subscribe()

	go func() {
		defer close(n.done)
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := n.send(FormatEvent(ev)); err != nil {
					log.Printf("[notify] send failed for %s: %v", ev.IncidentID, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("[notify] telegram notifier started (chat %d)", n.cfg.ChatID)
	return nil
}

// Stop cancels the consumer and waits for it to drain.
func (n *TelegramNotifier) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	if n.done != nil {
		<-n.done
	}
	log.Printf("[notify] telegram notifier stopped")
}

func (n *TelegramNotifier) send(text string) error {
	if n.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	// Telegram has a 4096 char limit per message
	const maxLen = 4000
	for len(text) > 0 {
		chunk := text
		if len(chunk) > maxLen {
			idx := strings.LastIndex(chunk[:maxLen], "\n")
			if idx > 0 {
				chunk = chunk[:idx]
			} else {
				chunk = chunk[:maxLen]
			}
		}
		text = text[len(chunk):]

		msg := tgbotapi.NewMessage(n.cfg.ChatID, chunk)
		if _, err := n.bot.Send(msg); err != nil {
			return fmt.Errorf("send telegram message: %w", err)
		}
	}
	return nil
}

// FormatEvent renders one incident event as a short notification line.
func FormatEvent(ev bus.Event) string {
	title, _ := ev.Incident["title"].(string)
	if title == "" {
		title, _ = ev.Incident["Subject"].(string)
	}
	switch ev.Type {
	case bus.IncidentCreated:
		priority, _ := ev.Incident["priority"].(string)
		if priority == "" {
			priority = "unset"
		}
		return fmt.Sprintf("New incident %s: %s (priority %s)", ev.IncidentID, title, priority)
	case bus.IncidentUpdated:
		status, _ := ev.Incident["status"].(string)
		return fmt.Sprintf("Incident %s updated: %s (status %s)", ev.IncidentID, title, status)
	case bus.IncidentDeleted:
		return fmt.Sprintf("Incident %s deleted: %s", ev.IncidentID, title)
	default:
		return fmt.Sprintf("Incident %s: %s event", ev.IncidentID, ev.Type)
	}
}
