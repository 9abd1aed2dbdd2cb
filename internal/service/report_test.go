package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/models"
	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
)

func readCSV(t *testing.T, svc *ReportService, kind string) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, svc.Write(context.Background(), kind, &buf))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestReportService_Write(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	svc := &ReportService{Repo: r}

	ada := storetest.Customer(t, r, "ada")
	storetest.Customer(t, r, "grace")
	stranger := uuid.New()
	storetest.Order(t, r, ada, "BF50000001", "12.5", models.OrderStatusDelivered)
	storetest.Order(t, r, ada, "BF50000002", "7.00", models.OrderStatusPending)
	storetest.Order(t, r, stranger, "BF50000003", "1.00", models.OrderStatusPending)

	cat := storetest.Category(t, r, "Office")
	p := storetest.Product(t, r, "Stapler, heavy", "9.90", 4)
	require.NoError(t, r.DB.Model(p).Update("category_id", cat.ID).Error)

	t.Run("orders", func(t *testing.T) {
		rows := readCSV(t, svc, ReportOrders)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"number", "customer", "total", "status", "date"}, rows[0])
		assert.Equal(t, []string{"BF50000001", "ada", "12.50", "delivered"}, rows[1][:4])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, rows[1][4])
		assert.Equal(t, stranger.String(), rows[3][1])
	})

	t.Run("products", func(t *testing.T) {
		rows := readCSV(t, svc, ReportProducts)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"name", "price", "stock", "category", "available"}, rows[0])
		assert.Equal(t, []string{"Stapler, heavy", "9.90", "4", "Office", "true"}, rows[1])
	})

	t.Run("customers", func(t *testing.T) {
		rows := readCSV(t, svc, ReportCustomers)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"username", "email", "joined", "orders"}, rows[0])
		byName := map[string][]string{}
		for _, row := range rows[1:] {
			byName[row[0]] = row
		}
		assert.Equal(t, "ada@example.com", byName["ada"][1])
		assert.Equal(t, "2", byName["ada"][3])
		assert.Equal(t, "0", byName["grace"][3])
	})

	t.Run("unknown kind", func(t *testing.T) {
		var buf bytes.Buffer
		require.ErrorIs(t, svc.Write(context.Background(), "invoices", &buf), ErrValidation)
		assert.Zero(t, buf.Len())
	})
}

func TestCustomerTouch_KeepsFirstSeen(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	id := storetest.Customer(t, r, "linus")

	customers, err := r.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	joined := customers[0].CreatedAt

	require.NoError(t, r.Touch(ctx, id, "linus2", "l@example.com"))
	customers, err = r.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "linus2", customers[0].Username)
	assert.True(t, joined.Equal(customers[0].CreatedAt))
}
