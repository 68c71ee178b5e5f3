package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/config"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/utils"
)

const (
	HeaderColor     = "#0088CC"
	BackgroundColor = "#F8FAFC"

	PayloadTypeNewOrder = "new_order"

	MenuButtonText = "Buka Layanan"
)

// NewOrderPayload is the summary forwarded to the bot after an order is stored.
type NewOrderPayload struct {
	Type         string `json:"type"`
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	CustomerID   string `json:"customer_id"`
	ServiceName  string `json:"service_name"`
	ContactInfo  string `json:"contact_info"`
	Deadline     string `json:"deadline"`
	Notes        string `json:"notes"`
	PriceFrom    int64  `json:"price_from"`
}

type Theme struct {
	HeaderColor     string `json:"header_color"`
	BackgroundColor string `json:"background_color"`
}

type State struct {
	Ready       bool   `json:"ready"`
	InTelegram  bool   `json:"in_telegram"`
	BotUsername string `json:"bot_username,omitempty"`
	Theme       Theme  `json:"theme"`
}

// Sender is what the ordering flow needs from the bridge.
type Sender interface {
	SendData(payload any) error
}

// Bridge wraps the bot host: readiness, appearance and the outbound message channel.
type Bridge struct {
	cfg config.TelegramConfig
	bot Bot
	log *zap.Logger

	mu       sync.RWMutex
	ready    bool
	inHost   bool
	theme    Theme
	username string

	queue chan []byte
}

// NewBridge builds a bridge; bot may be nil when no token is configured.
func NewBridge(cfg config.TelegramConfig, bot Bot, log *zap.Logger) *Bridge {
	return &Bridge{
		cfg:   cfg,
		bot:   bot,
		log:   log.Named("bridge"),
		queue: make(chan []byte, 256),
	}
}

// Init waits for the bot host until it answers or the wait timeout elapses.
// It never fails: on timeout the bridge is ready in degraded (no-host) mode.
func (b *Bridge) Init(ctx context.Context) {
	if b.bot == nil {
		b.log.Warn("no bot token, running outside Telegram")
		b.markReady(false)
		return
	}

	interval := b.cfg.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	wait := b.cfg.WaitTimeout
	if wait <= 0 {
		wait = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := b.bot.CheckToken(ctx)
		if err == nil {
			b.markReady(true)
			b.configureMenu(ctx)
			return
		}
		b.log.Debug("bot host not ready", zap.Error(err))

		select {
		case <-ctx.Done():
			b.log.Warn("bot host not available, running outside Telegram", zap.Duration("waited", wait))
			b.markReady(false)
			return
		case <-ticker.C:
		}
	}
}

// configureMenu points the bot's menu button at the mini-app. Telegram only accepts https URLs.
func (b *Bridge) configureMenu(ctx context.Context) {
	menu, ok := b.bot.(MenuConfigurer)
	if !ok || !strings.HasPrefix(b.cfg.WebAppURL, "https://") {
		return
	}
	if err := menu.SetMenuButton(ctx, MenuButtonText, b.cfg.WebAppURL); err != nil {
		b.log.Warn("set menu button", zap.Error(err))
		return
	}
	b.log.Info("menu button configured", zap.String("url", b.cfg.WebAppURL))
}

func (b *Bridge) markReady(inHost bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ready = true
	b.inHost = inHost
	// one-time appearance configuration
	b.theme = Theme{HeaderColor: HeaderColor, BackgroundColor: BackgroundColor}
	if named, ok := b.bot.(interface{ Username() string }); ok && inHost {
		b.username = named.Username()
	}
	b.log.Info("bridge ready", zap.Bool("in_telegram", inHost))
}

func (b *Bridge) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return State{
		Ready:       b.ready,
		InTelegram:  b.inHost,
		BotUsername: b.username,
		Theme:       b.theme,
	}
}

// SendData serialises payload and hands it to the bot without waiting for delivery.
// Outside Telegram the payload is only logged.
func (b *Bridge) SendData(payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bridge: encode payload: %w", err)
	}

	b.mu.RLock()
	inHost := b.inHost
	b.mu.RUnlock()

	if !inHost || b.cfg.AdminChatID == 0 {
		b.log.Info("Data yang akan dikirim ke bot", zap.ByteString("payload", raw))
		return nil
	}

	select {
	case b.queue <- raw:
	default:
		b.log.Warn("bot queue full, payload dropped", zap.ByteString("payload", raw))
	}
	return nil
}

// Run delivers queued payloads to the admin chat until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw := <-b.queue:
			if err := b.bot.SendMessage(ctx, b.cfg.AdminChatID, RenderMessage(raw)); err != nil {
				b.log.Error("deliver to bot failed", zap.Error(err))
			}
		}
	}
}

// RenderMessage turns a payload into the HTML text posted in the admin chat.
func RenderMessage(raw []byte) string {
	var p NewOrderPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.Type != PayloadTypeNewOrder {
		return "<pre>" + html.EscapeString(string(raw)) + "</pre>"
	}

	var sb strings.Builder
	sb.WriteString("🆕 <b>Pesanan Baru</b>\n\n")
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&sb, "<b>%s:</b> %s\n", label, html.EscapeString(value))
	}
	line("ID Pesanan", p.OrderID)
	line("Layanan", p.ServiceName)
	line("Harga mulai", utils.FormatRupiah(p.PriceFrom))
	line("Pemesan", p.CustomerName+" ("+p.CustomerID+")")
	line("Kontak", p.ContactInfo)
	line("Deadline", p.Deadline)
	line("Catatan", p.Notes)
	return strings.TrimRight(sb.String(), "\n")
}
