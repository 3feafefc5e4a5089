package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

// catalogRow una línea del CSV de catálogo.
type catalogRow struct {
	Line      int
	SKU       string
	Name      string
	Price     string
	Threshold *int
	Quantity  int
}

// parseCatalog lee sku;name;price;threshold;quantity. threshold y quantity son opcionales;
// una cabecera que empiece por "sku" se ignora. charset "latin1" decodifica ISO-8859-1.
func parseCatalog(r io.Reader, charset string) ([]catalogRow, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos sku;name;price", line)
		}
		row := catalogRow{
			Line:  line,
			SKU:   strings.TrimSpace(rec[0]),
			Name:  strings.TrimSpace(rec[1]),
			Price: strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."),
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(rec[3]))
			if err != nil {
				return nil, fmt.Errorf("línea %d: threshold inválido: %w", line, err)
			}
			row.Threshold = &n
		}
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(rec[4]))
			if err != nil {
				return nil, fmt.Errorf("línea %d: quantity inválida: %w", line, err)
			}
			row.Quantity = n
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// toRequest arma el request de creación con las mismas validaciones que la API.
func (r catalogRow) toRequest(warehouseID string) dto.CreateProductRequest {
	sku, name, wh, qty := r.SKU, r.Name, warehouseID, r.Quantity
	return dto.CreateProductRequest{
		Name:              &name,
		SKU:               &sku,
		Price:             json.RawMessage(strconv.Quote(r.Price)),
		WarehouseID:       &wh,
		InitialQuantity:   &qty,
		LowStockThreshold: r.Threshold,
	}
}

func runCatalog(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, err := parseCatalog(f, c.String("charset"))
	if err != nil {
		return err
	}

	cfg := configFrom(c)
	pool := poolFrom(c)
	alertCache, err := cache.NewAlertCache(c.Context, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, no se invalidarán alertas")
		alertCache = cache.NoopAlertCache{}
	}
	productUC := usecase.NewProductUseCase(
		postgres.NewProductRepository(pool), postgres.NewWarehouseRepository(pool),
		postgres.NewInventoryRepository(pool), postgres.NewBundleRepository(pool),
		postgres.NewTxRunner(pool), alertCache, cfg.Alerts.DefaultThreshold,
	)

	companyID, warehouseID := c.String("company-id"), c.String("warehouse-id")
	created, failed := 0, 0
	for _, row := range rows {
		out, err := productUC.Create(c.Context, companyID, row.toRequest(warehouseID))
		if err != nil {
			failed++
			log.Warn().Err(err).Int("line", row.Line).Str("sku", row.SKU).Msg("producto omitido")
			continue
		}
		created++
		log.Debug().Str("sku", row.SKU).Str("product_id", out.ProductID).Msg("producto creado")
	}
	log.Info().Int("created", created).Int("failed", failed).Msg("catálogo importado")
	return nil
}
