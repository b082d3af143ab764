package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
)

// monthEdit é uma edição pedida pela linha de comando no formato YYYY-MM=QTY@PRICE.
// Sem @PRICE o preço unitário sugerido pela sessão de edição é mantido.
type monthEdit struct {
	Key       domain.MonthKey
	Quantity  float64
	UnitPrice *float64
}

func parseEdit(value string) (monthEdit, error) {
	rawKey, rest, ok := strings.Cut(strings.TrimSpace(value), "=")
	if !ok {
		return monthEdit{}, fmt.Errorf("edição inválida %q, use YYYY-MM=QTD@PRECO", value)
	}

	key, err := aggregating.ParseMonthKey(rawKey)
	if err != nil {
		return monthEdit{}, err
	}

	rawQty, rawPrice, hasPrice := strings.Cut(rest, "@")
	quantity, err := strconv.ParseFloat(strings.TrimSpace(rawQty), 64)
	if err != nil {
		return monthEdit{}, fmt.Errorf("quantidade inválida %q", rawQty)
	}

	edit := monthEdit{Key: key, Quantity: quantity}
	if hasPrice {
		price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
		if err != nil {
			return monthEdit{}, fmt.Errorf("preço inválido %q", rawPrice)
		}
		edit.UnitPrice = &price
	}

	return edit, nil
}

// editList acumula as ocorrências da flag -edit
type editList []monthEdit

func (l *editList) String() string {
	parts := make([]string, 0, len(*l))
	for _, e := range *l {
		parts = append(parts, string(e.Key))
	}
	return strings.Join(parts, ",")
}

func (l *editList) Set(value string) error {
	edit, err := parseEdit(value)
	if err != nil {
		return err
	}
	*l = append(*l, edit)
	return nil
}
