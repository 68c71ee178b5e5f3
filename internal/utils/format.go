package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats a price the way the mini-app shows it: "Rp 50.000".
func FormatRupiah(price int64) string {
	if price < 0 {
		return "-Rp " + idPrinter.Sprintf("%d", -price)
	}
	return "Rp " + idPrinter.Sprintf("%d", price)
}

var idMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// FormatDate renders a date as "18 Okt 2026".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), idMonths[t.Month()-1], t.Year())
}
