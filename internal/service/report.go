package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Skotchmaster/bitforge_shop/internal/money"
	"github.com/Skotchmaster/bitforge_shop/internal/repo"
)

const (
	ReportOrders    = "orders"
	ReportProducts  = "products"
	ReportCustomers = "customers"

	reportTimeLayout = "2006-01-02 15:04"
)

var (
	orderColumns    = []string{"number", "customer", "total", "status", "date"}
	productColumns  = []string{"name", "price", "stock", "category", "available"}
	customerColumns = []string{"username", "email", "joined", "orders"}
)

type ReportService struct {
	Repo *repo.GormRepo
}

func ValidReport(kind string) bool {
	switch kind {
	case ReportOrders, ReportProducts, ReportCustomers:
		return true
	}
	return false
}

// Write streams the report as CSV with a header row.
func (s *ReportService) Write(ctx context.Context, kind string, w io.Writer) error {
	var rows [][]string
	var err error
	switch kind {
	case ReportOrders:
		rows, err = s.orders(ctx)
	case ReportProducts:
		rows, err = s.products(ctx)
	case ReportCustomers:
		rows, err = s.customers(ctx)
	default:
		return fmt.Errorf("%w: unknown report %q", ErrValidation, kind)
	}
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s report: %w", kind, err)
	}
	return nil
}

func (s *ReportService) orders(ctx context.Context) ([][]string, error) {
	orders, err := s.Repo.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.Repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID.String()] = c.Username
	}

	rows := [][]string{orderColumns}
	for _, o := range orders {
		who, ok := names[o.UserID.String()]
		if !ok {
			who = o.UserID.String()
		}
		rows = append(rows, []string{
			o.Number,
			who,
			o.Total.StringFixed(money.Places),
			string(o.Status),
			o.CreatedAt.UTC().Format(reportTimeLayout),
		})
	}
	return rows, nil
}

func (s *ReportService) products(ctx context.Context) ([][]string, error) {
	products, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{productColumns}
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		rows = append(rows, []string{
			p.Name,
			p.Price.StringFixed(money.Places),
			strconv.Itoa(p.Stock),
			category,
			strconv.FormatBool(p.Available),
		})
	}
	return rows, nil
}

func (s *ReportService) customers(ctx context.Context) ([][]string, error) {
	customers, err := s.Repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.OrderCounts(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{customerColumns}
	for _, c := range customers {
		rows = append(rows, []string{
			c.Username,
			c.Email,
			c.CreatedAt.UTC().Format(time.DateOnly),
			strconv.FormatInt(counts[c.ID], 10),
		})
	}
	return rows, nil
}
