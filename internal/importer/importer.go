// Package importer loads product catalogs from CSV exports.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"merchstore/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads product CSV exports and inserts/updates catalog rows.
// Expected headers: name, short_description, description, price_cents,
// category; extra columns are ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required header: name")
	}
	if _, ok := index["price_cents"]; !ok {
		return 0, errors.New("missing required header: price_cents")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		name := strings.TrimSpace(pick(record, index, "name"))
		if name == "" {
			continue
		}
		cents, err := strconv.ParseInt(strings.TrimSpace(pick(record, index, "price_cents")), 10, 64)
		if err != nil || cents < 0 {
			return imported, fmt.Errorf("invalid price for product %q", name)
		}

		p := domain.Product{
			Name:             name,
			ShortDescription: strings.TrimSpace(pick(record, index, "short_description")),
			Description:      strings.TrimSpace(pick(record, index, "description")),
			PriceCents:       cents,
			Category:         strings.TrimSpace(pick(record, index, "category")),
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	i, ok := index[key]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
