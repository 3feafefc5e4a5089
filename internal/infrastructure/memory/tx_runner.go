package memory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta transacciones sobre una copia del store. Los lectores de fuera siguen viendo el
// estado confirmado hasta el commit; las demás escrituras esperan a que termine.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn; si devuelve error la copia se descarta y el error se devuelve sin envolver.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	v := view{s: s, tx: &work}
	err := fn(ports.TxRepos{
		Products:  &ProductRepo{v: v},
		Inventory: &InventoryRepo{v: v},
		Logs:      &InventoryLogRepo{v: v},
		Sales:     &SaleRepo{v: v},
		Bundles:   &BundleRepo{v: v},
		Suppliers: &SupplierRepo{v: v},
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}
