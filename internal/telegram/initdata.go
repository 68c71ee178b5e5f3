package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DemoUserID   = "demo_user"
	DemoUserName = "Demo User"
)

var (
	ErrInitDataMissingHash = errors.New("telegram: init data has no hash")
	ErrInitDataSignature   = errors.New("telegram: init data signature mismatch")
	ErrInitDataExpired     = errors.New("telegram: init data expired")
)

// WebAppUser is the user object Telegram puts into WebApp init data.
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// ValidateInitData checks the WebApp init data signature and returns the user it carries.
// A valid payload without a user yields (nil, nil). maxAge <= 0 disables the freshness check.
func ValidateInitData(initData, botToken string, maxAge time.Duration, now time.Time) (*WebAppUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("telegram: parse init data: %w", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrInitDataMissingHash
	}
	values.Del("hash")

	if !hmac.Equal([]byte(strings.ToLower(hash)), []byte(SignInitData(values, botToken))) {
		return nil, ErrInitDataSignature
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram: invalid auth_date: %w", err)
		}
		if now.Sub(time.Unix(authDate, 0)) > maxAge {
			return nil, ErrInitDataExpired
		}
	}

	raw := values.Get("user")
	if raw == "" {
		return nil, nil
	}
	var u WebAppUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("telegram: decode user: %w", err)
	}
	return &u, nil
}

// SignInitData computes the hex hash Telegram attaches to init data (hash field excluded).
func SignInitData(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

// GetUserID returns the Telegram user id, or the demo identity outside Telegram.
func GetUserID(u *WebAppUser) string {
	if u == nil || u.ID == 0 {
		return DemoUserID
	}
	return strconv.FormatInt(u.ID, 10)
}

// GetUserName returns "first [last]", or the demo name outside Telegram.
func GetUserName(u *WebAppUser) string {
	if u == nil {
		return DemoUserName
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}
