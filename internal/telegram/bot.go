package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the slice of the Bot API the bridge needs.
type Bot interface {
	// CheckToken answers nil once the Bot API accepts the token.
	CheckToken(ctx context.Context) error
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// MenuConfigurer is implemented by bots that can point the chat menu button at the mini-app.
type MenuConfigurer interface {
	SetMenuButton(ctx context.Context, text, webAppURL string) error
}

// APIBot talks to the Telegram Bot API through telegram-bot-api.
type APIBot struct {
	token    string
	endpoint string
	client   *http.Client

	mu  sync.Mutex
	api *tgbotapi.BotAPI
}

func NewAPIBot(token string) *APIBot {
	return NewAPIBotWithEndpoint(token, tgbotapi.APIEndpoint, &http.Client{Timeout: 15 * time.Second})
}

// NewAPIBotWithEndpoint uses a custom endpoint format ("<base>/bot%s/%s").
func NewAPIBotWithEndpoint(token, endpoint string, client *http.Client) *APIBot {
	return &APIBot{token: token, endpoint: endpoint, client: client}
}

// ctxClient binds every Bot API request to ctx so a stalled call ends at the caller's deadline.
type ctxClient struct {
	ctx  context.Context
	base tgbotapi.HTTPClient
}

func (c ctxClient) Do(req *http.Request) (*http.Response, error) {
	return c.base.Do(req.WithContext(c.ctx))
}

func (b *APIBot) CheckToken(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.api != nil {
		return nil
	}
	// NewBotAPIWithClient calls getMe
	api, err := tgbotapi.NewBotAPIWithClient(b.token, b.endpoint, ctxClient{ctx: ctx, base: b.client})
	if err != nil {
		return fmt.Errorf("telegram: getMe: %w", err)
	}
	api.Client = b.client
	b.api = api
	return nil
}

// bound returns a copy of the ready API whose requests follow ctx.
func (b *APIBot) bound(ctx context.Context) (*tgbotapi.BotAPI, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.api == nil {
		return nil, fmt.Errorf("telegram: bot not ready")
	}
	api := *b.api
	api.Client = ctxClient{ctx: ctx, base: b.client}
	return &api, nil
}

// Username is empty until CheckToken succeeded.
func (b *APIBot) Username() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.api == nil {
		return ""
	}
	return b.api.Self.UserName
}

func (b *APIBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	api, err := b.bound(ctx)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("telegram: sendMessage: %w", err)
	}
	return nil
}

// SetMenuButton makes the default chat menu button open the mini-app.
func (b *APIBot) SetMenuButton(ctx context.Context, text, webAppURL string) error {
	api, err := b.bound(ctx)
	if err != nil {
		return err
	}

	params := tgbotapi.Params{}
	button := map[string]any{
		"type":    "web_app",
		"text":    text,
		"web_app": map[string]string{"url": webAppURL},
	}
	if err := params.AddInterface("menu_button", button); err != nil {
		return fmt.Errorf("telegram: encode menu button: %w", err)
	}
	if _, err := api.MakeRequest("setChatMenuButton", params); err != nil {
		return fmt.Errorf("telegram: setChatMenuButton: %w", err)
	}
	return nil
}
