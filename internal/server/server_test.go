package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/config"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/dashboard"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/repository"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/admin"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/catalog"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/order"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/session"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/telegram"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/testutil"
)

const botToken = "123456:TEST"

type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	Errors       map[string][]string
	Notification struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Variant     string `json:"variant"`
	} `json:"notification"`
}

type harness struct {
	app  *fiber.App
	gdb  *gorm.DB
	logo models.Service
}

func testConfig() config.Config {
	return config.Config{
		AppEnv:        "test",
		JWTSecret:     "secret",
		JWTExpiresMin: 60,
		Telegram: config.TelegramConfig{
			BotToken:    botToken,
			InitDataTTL: time.Hour,
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := zap.NewNop()
	gdb := testutil.NewDB(t)
	store := session.NewMemoryStore()

	cfg := testConfig()
	bridge := telegram.NewBridge(cfg.Telegram, nil, log)
	bridge.Init(context.Background())

	services := repository.NewGormServiceRepository(gdb)
	orders := repository.NewGormOrderRepository(gdb)
	hub := realtime.NewHub(log)
	notifier := realtime.NewNotifier(hub, nil, log)

	app := New(Deps{
		Config:    cfg,
		Log:       log,
		Bridge:    bridge,
		Catalog:   catalog.NewCatalogService(services, log),
		Orders:    order.NewOrderService(services, orders, bridge, notifier, store, log),
		Dashboard: dashboard.NewCoordinator(store, store, services, time.UTC, log),
		Admin:     admin.NewAdminService(repository.NewGormProfileRepository(gdb), orders, store, notifier, log),
		Hub:       hub,
	})

	h := &harness{app: app, gdb: gdb}
	h.logo = testutil.CreateService(t, gdb, "Desain Logo", 50000, true, 0)
	testutil.CreateService(t, gdb, "Arsip Lama", 10000, false, 1)
	return h
}

func (h *harness) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	res, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return res, env
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestListServices_OnlyActive(t *testing.T) {
	h := newHarness(t)

	res, env := h.do(t, http.MethodGet, "/api/services", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var cards []catalog.Card
	require.NoError(t, json.Unmarshal(env.Data, &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Desain Logo", cards[0].Name)
	assert.Equal(t, "Rp 50.000", cards[0].PriceLabel)
}

type brokenCatalog struct{}

func (brokenCatalog) List(ctx context.Context) ([]catalog.Card, error) {
	return []catalog.Card{}, errors.New("db down")
}

func (brokenCatalog) Categories(ctx context.Context) ([]string, error) {
	return nil, errors.New("db down")
}

func TestListServices_FailureIsDestructive(t *testing.T) {
	app := New(Deps{Config: testConfig(), Log: zap.NewNop(), Catalog: brokenCatalog{}})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/services", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Equal(t, "Gagal memuat daftar layanan", env.Notification.Description)
	assert.Equal(t, "destructive", env.Notification.Variant)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestOrderFlow_SelectSubmitReturnsToCatalog(t *testing.T) {
	h := newHarness(t)

	res, env := h.do(t, http.MethodPost, "/api/dashboard/select", `{"service_id":"`+h.logo.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, dashboard.ViewOrder, snap.View)
	assert.Equal(t, telegram.DemoUserName, snap.Form.CustomerName)

	body := `{"service_id":"` + h.logo.ID.String() + `","contact_info":"budi@mail.com","deadline":"` + tomorrow() + `","notes":"warna biru"}`
	res, env = h.do(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Pesanan Berhasil Dikirim!", env.Notification.Title)
	assert.Equal(t, "default", env.Notification.Variant)

	res, env = h.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, dashboard.ViewServices, snap.View)

	var stored models.Order
	require.NoError(t, h.gdb.First(&stored).Error)
	assert.Equal(t, telegram.DemoUserID, stored.TelegramUserID)
	assert.Equal(t, models.OrderStatusNew, stored.Status)
}

func TestSubmitOrder_MissingFields(t *testing.T) {
	h := newHarness(t)

	res, env := h.do(t, http.MethodPost, "/api/orders", `{"service_id":"`+h.logo.ID.String()+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, env.Errors, "contact_info")
	assert.Contains(t, env.Errors, "deadline")
	assert.Equal(t, "destructive", env.Notification.Variant)

	var count int64
	require.NoError(t, h.gdb.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminPanel_ProvisionAndUpdate(t *testing.T) {
	h := newHarness(t)
	body := `{"service_id":"` + h.logo.ID.String() + `","contact_info":"@budi","deadline":"` + tomorrow() + `"}`
	res, _ := h.do(t, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, env := h.do(t, http.MethodGet, "/api/admin", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var panel admin.Panel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, "Administrator", panel.RoleLabel)
	assert.Equal(t, 1, panel.Stats.New)
	require.Len(t, panel.Orders, 1)
	id := panel.Orders[0].ID

	res, _ = h.do(t, http.MethodPost, "/api/admin/orders/"+id+"/edit", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, env = h.do(t, http.MethodPatch, "/api/admin/orders/"+id, `{"status":"in_progress","work_notes":"mulai sketsa","work_link":""}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Status pesanan telah diperbarui", env.Notification.Description)
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, 1, panel.Stats.InProgress)
	assert.Equal(t, "Diproses", panel.Orders[0].StatusLabel)

	res, env = h.do(t, http.MethodPatch, "/api/admin/orders/"+id, `{"status":"archived"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "Gagal memperbarui status pesanan", env.Notification.Description)
}

func TestAdminPanel_ClientDenied(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.gdb.Create(&models.Profile{TelegramUserID: telegram.DemoUserID, Name: "Demo", Role: models.RoleClient}).Error)

	res, env := h.do(t, http.MethodGet, "/api/admin", "")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, middleware.AccessDeniedMessage, env.Notification.Description)
}

func signedInitData(user string) string {
	v := url.Values{}
	v.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	v.Set("user", user)
	v.Set("hash", telegram.SignInitData(v, botToken))
	return v.Encode()
}

func TestBridgeInit_SetsSessionCookie(t *testing.T) {
	h := newHarness(t)

	payload, err := json.Marshal(map[string]string{"init_data": signedInitData(`{"id":42,"first_name":"Siti"}`)})
	require.NoError(t, err)
	res, env := h.do(t, http.MethodPost, "/api/bridge/init", string(payload))
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	var sessCookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == middleware.CookieName {
			sessCookie = c
		}
	}
	require.NotNil(t, sessCookie)

	res, env = h.do(t, http.MethodGet, "/api/bridge", "", sessCookie)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var data struct {
		Identity telegram.Identity `json:"identity"`
		Bridge   telegram.State    `json:"bridge"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "42", data.Identity.UserID)
	assert.Equal(t, "Siti", data.Identity.Name)
	assert.True(t, data.Bridge.Ready)
	assert.False(t, data.Bridge.InTelegram)
	assert.Equal(t, telegram.HeaderColor, data.Bridge.Theme.HeaderColor)
}

func TestBridgeInit_RejectsTamperedData(t *testing.T) {
	h := newHarness(t)
	data := strings.Replace(signedInitData(`{"id":42,"first_name":"Siti"}`), "Siti", "Sito", 1)

	payload, err := json.Marshal(map[string]string{"init_data": data})
	require.NoError(t, err)
	res, env := h.do(t, http.MethodPost, "/api/bridge/init", string(payload))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "destructive", env.Notification.Variant)
}

func TestWebsocketRoute_RequiresUpgrade(t *testing.T) {
	h := newHarness(t)

	res, err := h.app.Test(httptest.NewRequest(http.MethodGet, "/ws/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, res.StatusCode)
}
