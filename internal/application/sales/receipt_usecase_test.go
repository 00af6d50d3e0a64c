package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/evodia-api/internal/application/sales"
	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

type fakeSales struct {
	orders map[string]entity.SalesOrder
}

func (f *fakeSales) ListIDs(context.Context) ([]string, error) { return nil, nil }
func (f *fakeSales) Append(context.Context, entity.SalesOrder) error { return nil }
func (f *fakeSales) List(context.Context) ([]entity.SalesOrder, error) { return nil, nil }
func (f *fakeSales) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

type fakeResolver struct {
	recipe *entity.Recipe
	err    error
}

func (f fakeResolver) Resolve(context.Context, string) (*entity.Recipe, error) {
	return f.recipe, f.err
}

type capturePDF struct {
	got sales.Receipt
	err error
}

func (c *capturePDF) GenerateSaleReceipt(_ context.Context, r sales.Receipt) ([]byte, error) {
	c.got = r
	return []byte("%PDF-fake"), c.err
}

func newSales() *fakeSales {
	return &fakeSales{orders: map[string]entity.SalesOrder{
		"EVO-S-0001": {ReceiptID: "EVO-S-0001", ClientName: "Sari", ProductName: "Vela", ProductQuantity: 2},
	}}
}

func TestGenerateReceipt_ConReceta(t *testing.T) {
	pdf := &capturePDF{}
	recipe := &entity.Recipe{ProductName: "Vela", Components: []entity.Component{
		{MaterialName: "Cera", SupplierName: "A", QuantityNeeded: decimal.NewFromInt(200)},
	}}
	uc := sales.NewReceiptUseCase(newSales(), fakeResolver{recipe: recipe}, pdf, "Evodia", nil)

	out, name, err := uc.GenerateReceipt(context.Background(), "EVO-S-0001")
	require.NoError(t, err)
	assert.Equal(t, "comprobante-EVO-S-0001.pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "Evodia", pdf.got.Business)
	assert.Len(t, pdf.got.Components, 1)
}

func TestGenerateReceipt_RecetaAusenteNoFalla(t *testing.T) {
	pdf := &capturePDF{}
	uc := sales.NewReceiptUseCase(newSales(), fakeResolver{err: domain.ErrRecipeNotFound}, pdf, "Evodia", nil)

	_, _, err := uc.GenerateReceipt(context.Background(), "EVO-S-0001")
	require.NoError(t, err)
	assert.Empty(t, pdf.got.Components)
}

func TestGenerateReceipt_Errores(t *testing.T) {
	uc := sales.NewReceiptUseCase(newSales(), nil, &capturePDF{}, "Evodia", nil)

	_, _, err := uc.GenerateReceipt(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.GenerateReceipt(context.Background(), "EVO-S-9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ioErr := errors.New("disco lleno")
	uc = sales.NewReceiptUseCase(newSales(), fakeResolver{err: ioErr}, &capturePDF{}, "Evodia", nil)
	_, _, err = uc.GenerateReceipt(context.Background(), "EVO-S-0001")
	assert.ErrorIs(t, err, ioErr)

	uc = sales.NewReceiptUseCase(newSales(), nil, &capturePDF{err: ioErr}, "Evodia", nil)
	_, _, err = uc.GenerateReceipt(context.Background(), "EVO-S-0001")
	assert.ErrorIs(t, err, ioErr)
}
