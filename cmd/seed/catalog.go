package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// charsetReader envuelve r para decodificar exportaciones heredadas a UTF-8.
func charsetReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1251", "cp1251":
		return transform.NewReader(r, charmap.Windows1251.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// readCatalog lee productos en formato title;description;price;image.
// La cabecera es opcional y el precio admite coma decimal.
func readCatalog(r io.Reader, charset string) ([]entity.Product, error) {
	src, err := charsetReader(r, charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []entity.Product
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "title") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 3 columnas", line)
		}
		title := strings.TrimSpace(rec[0])
		description := strings.TrimSpace(rec[1])
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[2])
		}
		if title == "" || description == "" || !price.IsPositive() {
			return nil, fmt.Errorf("línea %d: título, descripción y precio positivo son requeridos", line)
		}
		if entity.TooLong(title, entity.MaxTitleLen) || !entity.FitsMoney(price, entity.MaxPrice) {
			return nil, fmt.Errorf("línea %d: título demasiado largo o precio fuera de rango", line)
		}
		p := entity.Product{Title: title, Description: description, Price: price}
		if len(rec) > 3 {
			if img := strings.TrimSpace(rec[3]); img != "" {
				p.Image = &img
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// importCatalog inserta los productos cuyo título (sin distinguir mayúsculas) aún no existe.
// Repetir la importación del mismo archivo no duplica el catálogo.
func importCatalog(ctx context.Context, repo repository.ProductRepository, products []entity.Product, now time.Time) (inserted, skipped int, err error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("listar catálogo: %w", err)
	}
	seen := make(map[string]struct{}, len(existing)+len(products))
	for _, p := range existing {
		seen[strings.ToLower(p.Title)] = struct{}{}
	}
	for i := range products {
		key := strings.ToLower(products[i].Title)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		if err := repo.Create(ctx, &products[i]); err != nil {
			return inserted, skipped, fmt.Errorf("insertar %q: %w", products[i].Title, err)
		}
		seen[key] = struct{}{}
		inserted++
	}
	return inserted, skipped, nil
}
