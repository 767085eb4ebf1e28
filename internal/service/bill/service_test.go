package bill

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBillRepo struct {
	items  map[string]bill.Bill
	unsent []bill.Bill
	sentID string
}

func (f *fakeBillRepo) Create(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	b.ID = "b-new"
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBillRepo) GetByID(ctx context.Context, id string) (bill.Bill, error) {
	b, ok := f.items[id]
	if !ok {
		return bill.Bill{}, bill.ErrBillNotFound
	}
	return b, nil
}

func (f *fakeBillRepo) List(ctx context.Context, filter bill.BillFilter) ([]bill.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) Update(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBillRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeBillRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	f.sentID = id
	return nil
}

func (f *fakeBillRepo) ListUnsent(ctx context.Context) ([]bill.Bill, error) {
	return f.unsent, nil
}

type fakeClientRepo struct {
	client.ClientRepository
	clients map[string]client.Client
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id string) (client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestTotals(t *testing.T) {
	b := bill.Bill{
		Items: []bill.Item{
			{Description: "Shoot", Quantity: d("2"), UnitPrice: d("1500.50")},
			{Description: "Album", Quantity: d("1"), UnitPrice: d("999.99")},
		},
		AdditionalCharges: []bill.Charge{{Label: "Travel", Amount: d("250")}},
		TaxPercent:        d("18"),
	}

	totals := b.Totals()
	assert.Equal(t, "4250.99", totals.Subtotal.String())
	assert.Equal(t, "765.18", totals.Tax.String())
	assert.Equal(t, "5016.17", totals.Total.String())

	assert.True(t, bill.Bill{}.Totals().Total.IsZero())
}

func TestCreateBillValidation(t *testing.T) {
	svc := NewBillService(&fakeBillRepo{items: map[string]bill.Bill{}}, &fakeClientRepo{}, time.UTC)

	due := "2024-02-01"
	_, err := svc.Create(context.Background(), bill.CreateBillRequest{
		BillDate:   "2024-03-01",
		DueDate:    &due,
		Items:      []bill.Item{{Description: "Shoot", Quantity: d("0"), UnitPrice: d("-1")}},
		TaxPercent: d("120"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "client_details")
	assert.Contains(t, fields, "due_date")
	assert.Equal(t, "quantity must be greater than 0", fields["items[0].quantity"])
	assert.Contains(t, fields, "items[0].unit_price")
	assert.Contains(t, fields, "tax_percent")

	_, err = svc.Create(context.Background(), bill.CreateBillRequest{ClientDetails: "Dana", BillDate: "2024-03-01"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "items")
}

func TestCreateBillFillsClientDetails(t *testing.T) {
	clientID := "7d9f3c1e-8a4b-4f2e-9c6d-1b2a3c4d5e6f"
	repo := &fakeBillRepo{items: map[string]bill.Bill{}}
	clients := &fakeClientRepo{clients: map[string]client.Client{
		clientID: {ID: clientID, Name: "Dana", CompanyName: "Acme", PhoneNumber: "555"},
	}}
	svc := NewBillService(repo, clients, time.UTC)

	resp, err := svc.Create(context.Background(), bill.CreateBillRequest{
		ClientID: &clientID,
		BillDate: "2024-03-01",
		Items:    []bill.Item{{Description: "Shoot", Quantity: d("1"), UnitPrice: d("100")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana\nAcme\n555", resp.ClientDetails)
	assert.Equal(t, "100", resp.Total.String())
	assert.Empty(t, resp.AdditionalCharges)
}

func TestMarkSent(t *testing.T) {
	repo := &fakeBillRepo{items: map[string]bill.Bill{
		"1": {ID: "1", BillDate: date("2024-03-01")},
		"2": {ID: "2", BillDate: date("2024-03-01"), IsSent: true},
	}}
	svc := NewBillService(repo, &fakeClientRepo{}, time.UTC)

	resp, err := svc.MarkSent(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, resp.IsSent)
	assert.NotNil(t, resp.SentAt)
	assert.Equal(t, "1", repo.sentID)

	_, err = svc.MarkSent(context.Background(), "2")
	assert.ErrorIs(t, err, bill.ErrBillAlreadySent)
}

func TestStanding(t *testing.T) {
	past, soon := date("2024-03-01"), date("2024-03-12")
	bills := []bill.Bill{
		{ID: "overdue", DueDate: &past},
		{ID: "soon", DueDate: &soon},
		{ID: "open"},
	}

	out := Standing(bills, date("2024-03-10"))
	require.Len(t, out, 3)
	assert.Equal(t, -9, *out[0].DaysUntilDue)
	assert.True(t, out[0].Overdue)
	assert.Equal(t, 2, *out[1].DaysUntilDue)
	assert.False(t, out[1].Overdue)
	assert.Nil(t, out[2].DaysUntilDue)
	assert.False(t, out[2].Overdue)
}

func TestUpdateRejectsDueBeforeBillDate(t *testing.T) {
	due := date("2024-03-10")
	repo := &fakeBillRepo{items: map[string]bill.Bill{"1": {ID: "1", BillDate: date("2024-03-01"), DueDate: &due}}}
	svc := NewBillService(repo, &fakeClientRepo{}, time.UTC)

	newBillDate := "2024-03-20"
	_, err := svc.Update(context.Background(), "1", bill.UpdateBillRequest{BillDate: &newBillDate})
	assert.ErrorIs(t, err, bill.ErrDueBeforeBillDate)
}
