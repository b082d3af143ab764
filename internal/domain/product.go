package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Product representa um produto do catálogo com os totais de venda calculados
type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	CategoryID        int64   `json:"category_id"`
	Category          *string `json:"category"`
	TotalSold         int     `json:"total_sold"`
	Revenue           float64 `json:"revenue"`
	TotalSoldOverride *int    `json:"-"`
}

// NewProduct é o corpo de criação de produto
type NewProduct struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	CategoryID  ID      `json:"category_id" validate:"required,gt=0"`
}

// ProductUpdate é o corpo de edição de produto
type ProductUpdate struct {
	Price     *float64 `json:"price" validate:"required,gte=0"`
	TotalSold *int     `json:"total_sold" validate:"omitempty,gte=0"`
}

// ProductCreated é a resposta da criação de produto
type ProductCreated struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
	Status  string  `json:"status"`
}

// ProductUpdated é a resposta da edição de produto
type ProductUpdated struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

// ID aceita tanto número quanto string numérica no JSON; o frontend envia category_id como string.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		data = []byte(raw)
	}

	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("identificador inválido: %s", data)
	}

	*id = ID(value)
	return nil
}
