package telegram

// Identity is the caller as resolved from init data, a session cookie or the demo fallback.
type Identity struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	InTelegram bool   `json:"in_telegram"`
}

// DemoIdentity is used when the mini-app runs outside Telegram.
func DemoIdentity() Identity {
	return Identity{UserID: DemoUserID, Name: DemoUserName}
}

// IdentityOf maps a WebApp user (possibly nil) to an Identity.
func IdentityOf(u *WebAppUser) Identity {
	return Identity{UserID: GetUserID(u), Name: GetUserName(u), InTelegram: u != nil}
}
