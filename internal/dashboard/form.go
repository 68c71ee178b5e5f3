package dashboard

import (
	"strings"
	"time"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/services/catalog"
)

const dateLayout = "2006-01-02"

// OrderForm is the order draft for one selected service.
type OrderForm struct {
	Service      catalog.Card `json:"service"`
	CustomerName string       `json:"customer_name"`
	ContactInfo  string       `json:"contact_info"`
	Deadline     string       `json:"deadline"`
	Notes        string       `json:"notes"`
	MinDeadline  string       `json:"min_deadline"`
	Submitting   bool         `json:"submitting"`
}

// MinDeadline is tomorrow's date in loc. It is an input hint, not a server rule.
func MinDeadline(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).AddDate(0, 0, 1).Format(dateLayout)
}

func (f OrderForm) CanSubmit() bool {
	if f.Submitting {
		return false
	}
	return strings.TrimSpace(f.ContactInfo) != "" && strings.TrimSpace(f.Deadline) != ""
}
