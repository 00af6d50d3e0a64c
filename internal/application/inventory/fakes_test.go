package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
	"github.com/jhoicas/evodia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventory struct {
	mu           sync.Mutex
	entries      []entity.MaterialStock
	listErr      error
	replaceErr   error
	replaceCalls int
}

func (f *fakeInventory) List(context.Context) ([]entity.MaterialStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.MaterialStock, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeInventory) ReplaceAll(_ context.Context, entries []entity.MaterialStock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.entries = make([]entity.MaterialStock, len(entries))
	copy(f.entries, entries)
	return nil
}

func (f *fakeInventory) stock(material, supplier string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.MaterialName == material && e.SupplierName == supplier {
			return e.CurrentStock
		}
	}
	return decimal.NewFromInt(-1)
}

type fakeRecipes struct {
	encoded map[string]string
}

func (f *fakeRecipes) GetEncoded(_ context.Context, product string) (string, error) {
	enc, ok := f.encoded[product]
	if !ok {
		return "", domain.ErrNotFound
	}
	return enc, nil
}

func (f *fakeRecipes) ListEncoded(context.Context) ([]repository.EncodedRecipe, error) {
	out := make([]repository.EncodedRecipe, 0, len(f.encoded))
	for p, c := range f.encoded {
		out = append(out, repository.EncodedRecipe{ProductName: p, Components: c})
	}
	return out, nil
}

func (f *fakeRecipes) SaveEncoded(_ context.Context, product, components string) error {
	f.encoded[product] = components
	return nil
}

type fakeSales struct {
	mu        sync.Mutex
	orders    []entity.SalesOrder
	ids       []string
	listErr   error
	appendErr error
}

func (f *fakeSales) ListIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := append([]string(nil), f.ids...)
	for _, o := range f.orders {
		ids = append(ids, o.ReceiptID)
	}
	return ids, nil
}

func (f *fakeSales) Append(_ context.Context, o entity.SalesOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeSales) List(context.Context) ([]entity.SalesOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.SalesOrder(nil), f.orders...), nil
}

func (f *fakeSales) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ReceiptID == id {
			o := o
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakePurchases struct {
	orders    []entity.PurchaseOrder
	ids       []string
	appendErr error
	batches   int
}

func (f *fakePurchases) ListIDs(context.Context) ([]string, error) {
	ids := append([]string(nil), f.ids...)
	for _, o := range f.orders {
		ids = append(ids, o.PurchaseID)
	}
	return ids, nil
}

func (f *fakePurchases) AppendBatch(_ context.Context, orders []entity.PurchaseOrder) error {
	f.batches++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.orders = append(f.orders, orders...)
	return nil
}

func (f *fakePurchases) List(context.Context) ([]entity.PurchaseOrder, error) {
	return append([]entity.PurchaseOrder(nil), f.orders...), nil
}

type recordedOp struct {
	kind    string
	outcome string
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (f *fakeRecorder) ObserveOperation(kind, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, recordedOp{kind: kind, outcome: outcome})
}

func (f *fakeRecorder) last() recordedOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ops) == 0 {
		return recordedOp{}
	}
	return f.ops[len(f.ops)-1]
}

var fixedNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
