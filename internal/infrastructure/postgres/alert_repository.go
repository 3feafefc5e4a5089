package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo consultas batch por empresa para el cálculo de alertas de stock bajo.
// Cada método es una sola consulta; el ensamblado por fila ocurre en el dominio.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el repositorio de lectura.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// ListLowStockCandidates pares con inventario en o bajo el umbral del producto.
// Producto y bodega deben pertenecer a la empresa.
func (r *AlertRepo) ListLowStockCandidates(ctx context.Context, companyID string) ([]entity.LowStockCandidate, error) {
	if !validID(companyID) {
		return []entity.LowStockCandidate{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.sku, w.id, w.name, i.quantity, p.low_stock_threshold
		FROM products p
		JOIN inventory i  ON i.product_id = p.id
		JOIN warehouses w ON w.id = i.warehouse_id AND w.company_id = p.company_id
		WHERE p.company_id = $1
		  AND i.quantity <= p.low_stock_threshold
		ORDER BY p.id, w.id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query low-stock candidates: %w", err)
	}
	defer rows.Close()

	list := []entity.LowStockCandidate{}
	for rows.Next() {
		var c entity.LowStockCandidate
		if err := rows.Scan(&c.ProductID, &c.ProductName, &c.SKU, &c.WarehouseID, &c.WarehouseName, &c.Quantity, &c.Threshold); err != nil {
			return nil, fmt.Errorf("scan low-stock candidate: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListRecentlySoldPairs pares de la empresa con alguna venta en sold_at >= since.
func (r *AlertRepo) ListRecentlySoldPairs(ctx context.Context, companyID string, since time.Time) (map[entity.StockPair]bool, error) {
	out := map[entity.StockPair]bool{}
	if !validID(companyID) {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT s.product_id, s.warehouse_id
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1 AND s.sold_at >= $2`, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("query recent sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pair entity.StockPair
		if err := rows.Scan(&pair.ProductID, &pair.WarehouseID); err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		out[pair] = true
	}
	return out, rows.Err()
}

// SumUnitsSold unidades vendidas por par con sold_at en [from, to].
func (r *AlertRepo) SumUnitsSold(ctx context.Context, companyID string, from, to time.Time) (map[entity.StockPair]int64, error) {
	out := map[entity.StockPair]int64{}
	if !validID(companyID) {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT s.product_id, s.warehouse_id, COALESCE(SUM(s.quantity), 0)::BIGINT
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE p.company_id = $1 AND s.sold_at >= $2 AND s.sold_at <= $3
		GROUP BY s.product_id, s.warehouse_id`, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query units sold: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pair entity.StockPair
		var units int64
		if err := rows.Scan(&pair.ProductID, &pair.WarehouseID, &units); err != nil {
			return nil, fmt.Errorf("scan units sold: %w", err)
		}
		out[pair] = units
	}
	return out, rows.Err()
}

// ListProductSuppliers vínculos proveedor↔producto de la empresa agrupados por producto.
func (r *AlertRepo) ListProductSuppliers(ctx context.Context, companyID string) (map[string][]entity.SupplierContact, error) {
	out := map[string][]entity.SupplierContact{}
	if !validID(companyID) {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT sp.product_id, s.id, s.name, s.contact_email, sp.is_primary
		FROM supplier_products sp
		JOIN suppliers s ON s.id = sp.supplier_id
		JOIN products p  ON p.id = sp.product_id
		WHERE p.company_id = $1
		ORDER BY sp.product_id, s.id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query product suppliers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.SupplierContact
		if err := rows.Scan(&c.ProductID, &c.SupplierID, &c.Name, &c.ContactEmail, &c.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan product supplier: %w", err)
		}
		out[c.ProductID] = append(out[c.ProductID], c)
	}
	return out, rows.Err()
}
