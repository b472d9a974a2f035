package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountUnit is the currency unit appended to normalized amounts.
const AmountUnit = "USDT"

// GroupRecord is a green-filled topic paired with its member count.
type GroupRecord struct {
	// Sheet is the title of the sheet holding the group.
	Sheet string `json:"sheet"`
	// Title is the cleaned group title.
	Title string `json:"title"`
	// Count is the number of non-red descendants of the group topic.
	Count int `json:"count"`
}

// Row is the tabular form of a group title.
type Row struct {
	// Ingreso is the join date token.
	Ingreso string `json:"ingreso"`
	// Agente is the masked agent name.
	Agente string `json:"agente"`
	// Monto is the normalized invested amount, e.g. "100 USDT" (empty if none).
	Monto string `json:"monto"`
	// Nivel is the level token.
	Nivel string `json:"nivel"`
	// Total is the member count of the group.
	Total int `json:"total"`
	// Sheet is the owning sheet title (verbose mode only).
	Sheet string `json:"sheet,omitempty"`
}

// AmountValue parses the numeric part of Monto.
func (r Row) AmountValue() (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(r.Monto, " "+AmountUnit))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
