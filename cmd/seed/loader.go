package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// loadSeedData lê categories.csv, products.csv e sales.csv do diretório informado.
// Datas de venda sem fuso são lidas no fuso loc.
func loadSeedData(dir string, loc *time.Location) (repository.SeedData, error) {
	var data repository.SeedData

	err := readCSV(filepath.Join(dir, "categories.csv"), func(row csvRow) error {
		id, err := row.intValue("id")
		if err != nil {
			return err
		}
		data.Categories = append(data.Categories, domain.Category{ID: id, Name: row.get("name")})
		return nil
	})
	if err != nil {
		return data, err
	}

	err = readCSV(filepath.Join(dir, "products.csv"), func(row csvRow) error {
		id, err := row.intValue("id")
		if err != nil {
			return err
		}
		price, err := row.floatValue("price")
		if err != nil {
			return err
		}
		categoryID, err := row.intValue("category_id")
		if err != nil {
			return err
		}
		data.Products = append(data.Products, domain.Product{
			ID:          id,
			Name:        row.get("name"),
			Description: row.get("description"),
			Price:       price,
			CategoryID:  categoryID,
		})
		return nil
	})
	if err != nil {
		return data, err
	}

	err = readCSV(filepath.Join(dir, "sales.csv"), func(row csvRow) error {
		id, err := row.intValue("id")
		if err != nil {
			return err
		}
		productID, err := row.intValue("product_id")
		if err != nil {
			return err
		}
		quantity, err := row.intValue("quantity")
		if err != nil {
			return err
		}
		total, err := row.floatValue("total_price")
		if err != nil {
			return err
		}
		date, err := domain.ParseSaleDate(row.get("date"), loc)
		if err != nil {
			return fmt.Errorf("linha %d: %w", row.line, err)
		}
		data.Sales = append(data.Sales, domain.SaleRecord{
			ID:         id,
			ProductID:  productID,
			Quantity:   int(quantity),
			TotalPrice: total,
			Date:       date,
		})
		return nil
	})

	return data, err
}

type csvRow struct {
	file    string
	line    int
	columns map[string]int
	record  []string
}

func (r csvRow) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

func (r csvRow) intValue(column string) (int64, error) {
	v, err := strconv.ParseInt(r.get(column), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s linha %d: coluna %s inválida: %q", r.file, r.line, column, r.get(column))
	}
	return v, nil
}

func (r csvRow) floatValue(column string) (float64, error) {
	v, err := strconv.ParseFloat(r.get(column), 64)
	if err != nil {
		return 0, fmt.Errorf("%s linha %d: coluna %s inválida: %q", r.file, r.line, column, r.get(column))
	}
	return v, nil
}

func readCSV(path string, fn func(row csvRow) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("erro ao abrir %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("erro ao ler %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	name := filepath.Base(path)
	for i, record := range records[1:] {
		if err := fn(csvRow{file: name, line: i + 1, columns: columns, record: record}); err != nil {
			return err
		}
	}

	return nil
}
