package view

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Alturino/storefront/internal/config"
)

const nbsp = "\u00a0"

// PriceFormatter renders amounts with the configured currency symbol and the separators of the
// configured locale, e.g. "R$ 1.079,70" for pt-BR, separated by a non-breaking space.
// Digits come from the exact decimal, so no precision is lost on large amounts.
type PriceFormatter struct {
	symbol string
	group  string
	point  string
}

func NewPriceFormatter(cfg config.Currency) *PriceFormatter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	group, point := separators(message.NewPrinter(tag))
	return &PriceFormatter{symbol: cfg.Symbol, group: group, point: point}
}

// separators reads the grouping and decimal separators the locale prints for 1234.5.
func separators(printer *message.Printer) (group string, point string) {
	sample := []rune(printer.Sprintf("%.1f", 1234.5))
	if len(sample) < 6 {
		return "", "."
	}
	point = string(sample[len(sample)-2])
	group = string(sample[1 : len(sample)-5])
	return group, point
}

func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}
	integer, fraction, _ := strings.Cut(fixed, ".")

	value := sign + groupDigits(integer, f.group) + f.point + fraction
	if f.symbol == "" {
		return value
	}
	return f.symbol + nbsp + value
}

func groupDigits(digits string, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	b := strings.Builder{}
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
