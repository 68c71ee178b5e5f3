package utils

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the toast the mini-app shows after an action.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func Notify(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// NotifyError is the destructive toast; the title is always "Error".
func NotifyError(description string) Notification {
	return Notification{Title: "Error", Description: description, Variant: VariantDestructive}
}
