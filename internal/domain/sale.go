package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Formatos aceitos para a data de uma venda. O backend legado devolvia apenas a data.
var saleDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// SaleRecord representa uma venda individual (imutável) retornada pelo relatório
type SaleRecord struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	Profit      float64   `json:"profit"`
	Date        time.Time `json:"date"`
}

func (s *SaleRecord) UnmarshalJSON(data []byte) error {
	record, err := UnmarshalSaleRecord(data, time.UTC)
	if err != nil {
		return err
	}
	*s = record

	return nil
}

// UnmarshalSaleRecord decodifica uma venda lendo datas sem fuso no horário de loc
func UnmarshalSaleRecord(data []byte, loc *time.Location) (SaleRecord, error) {
	type alias SaleRecord
	var record SaleRecord
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(&record)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return SaleRecord{}, err
	}

	date, err := ParseSaleDate(aux.Date, loc)
	if err != nil {
		return SaleRecord{}, err
	}
	record.Date = date

	return record, nil
}

// ParseSaleDate interpreta a data de uma venda em qualquer um dos formatos conhecidos.
// Datas sem fuso são o horário local de loc (nil = UTC); datas com fuso mantêm o seu.
func ParseSaleDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range saleDateLayouts {
		if date, err := time.ParseInLocation(layout, value, loc); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("data de venda inválida: %q", value)
}
