package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// Translation is a literal substring replacement applied to agent names.
type Translation struct {
	From, To string
}

// Translations are applied in order; later entries see earlier results.
var Translations = []Translation{
	{From: "画布", To: "Lienzo"},
	{From: "画布 1", To: "Lienzo 1"},
}

var (
	// amountUnitRE also eats a backslash followed by any run of 's' before
	// the unit, as left by titles typed with an escaped space ("100\sUSDT").
	// Longer runs ("100\sssUSDT") are stripped the same way.
	amountUnitRE  = regexp.MustCompile(`(?i)(?:\\s*)?\s*USDT`)
	amountTailURE = regexp.MustCompile(`(?i)U$`)
)

// Token positions of a group title: "<date> <x> <agent> <amount> <level>"
// or "<date> <x> <agent> <amount> <y> <level>".
const (
	tokIngreso = 0
	tokAgente  = 2
	tokMonto   = 3
	tokNivel   = 4
	tokNivelX  = 5
)

// CleanTitle collapses whitespace runs to a single space and trims.
func CleanTitle(title string) string {
	return strings.Join(strings.FieldsFunc(title, isSpace), " ")
}

// CleanTopicTitle cleans the title of t, falling back to the placeholder
// when the title is missing or empty.
func CleanTopicTitle(t *models.Topic) string {
	if t == nil || !t.HasTitle || t.Title == "" {
		return models.UntitledPlaceholder
	}
	return CleanTitle(t.Title)
}

// TranslateTitle replaces every known literal with its translation.
func TranslateTitle(title string) string {
	for _, tr := range Translations {
		title = strings.ReplaceAll(title, tr.From, tr.To)
	}
	return title
}

// ParseGroupRow splits a group title into its positional fields.
func ParseGroupRow(rawTitle string, totalMembers int) models.Row {
	cleaned := models.UntitledPlaceholder
	if rawTitle != "" {
		cleaned = CleanTitle(rawTitle)
	}
	parts := strings.Split(cleaned, " ")

	nivel := token(parts, tokNivelX)
	if nivel == "" {
		nivel = token(parts, tokNivel)
	}
	return models.Row{
		Ingreso: token(parts, tokIngreso),
		Agente:  MaskSensitive(TranslateTitle(token(parts, tokAgente))),
		Monto:   NormalizeAmount(token(parts, tokMonto)),
		Nivel:   nivel,
		Total:   totalMembers,
	}
}

// NormalizeAmount strips the unit and a trailing "U" from an amount token
// and appends the canonical unit, e.g. "100USDT" and "100U" give "100 USDT".
func NormalizeAmount(amount string) string {
	if amount == "" {
		return ""
	}
	amount = amountUnitRE.ReplaceAllString(amount, "")
	amount = amountTailURE.ReplaceAllString(amount, "")
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	return amount + " " + models.AmountUnit
}

func token(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// isSpace matches the whitespace set titles are split on, BOM included.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
