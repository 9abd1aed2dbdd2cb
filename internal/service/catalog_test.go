package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bitforge_shop/internal/repo"
	"github.com/Skotchmaster/bitforge_shop/internal/storetest"
	"github.com/Skotchmaster/bitforge_shop/internal/transport"
	"github.com/Skotchmaster/bitforge_shop/pkg/events"
	"github.com/Skotchmaster/bitforge_shop/pkg/search"
)

type fakeIndex struct {
	docs    map[uint]search.ProductDoc
	deleted []uint
	hits    []uint
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, doc search.ProductDoc) error {
	if f.docs == nil {
		f.docs = map[uint]search.ProductDoc{}
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchProducts(context.Context, string, int, int) (int64, []uint, error) {
	return int64(len(f.hits)), f.hits, f.err
}

func TestCatalogService_ProductLifecycle(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	rec := &events.Recorder{}
	idx := &fakeIndex{}
	svc := &CatalogService{Repo: r, Events: rec, Index: idx}
	cat := storetest.Category(t, r, "Peripherals")

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:       "Trackball",
		Price:      dec("39.999"),
		Stock:      3,
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	assertMoney(t, "40.00", prod.Price)
	assert.True(t, prod.Available)
	assert.Equal(t, "Peripherals", idx.docs[prod.ID].Category)

	name := "Trackball Pro"
	stock := 7
	prod, err = svc.PatchProduct(ctx, transport.PatchProductRequest{Name: &name, Stock: &stock}, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trackball Pro", prod.Name)
	assert.Equal(t, 7, prod.Stock)
	assertMoney(t, "40.00", prod.Price)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))
	assert.Equal(t, []uint{prod.ID}, idx.deleted)
	require.ErrorIs(t, svc.DeleteProduct(ctx, prod.ID), ErrNotFound)

	assert.Equal(t, []string{"product_created", "product_updated", "product_deleted"}, rec.Types(events.TopicCatalog))
}

func TestCatalogService_Validation(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: " ", Price: dec("1")})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "X", Price: dec("-0.01")})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "X", Price: dec("1"), Stock: -1})
	require.ErrorIs(t, err, ErrValidation)
	missing := uint(77)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "X", Price: dec("1"), CategoryID: &missing})
	require.ErrorIs(t, err, ErrNotFound)

	p := storetest.Product(t, r, "Y", "1.00", 1)
	negative := -3
	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{Stock: &negative}, p.ID)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{}, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_Search(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	a := storetest.Product(t, r, "Red Lamp", "10.00", 1)
	b := storetest.Product(t, r, "Blue lamp", "12.00", 1)
	hidden := storetest.Product(t, r, "Old lamp", "5.00", 1)
	require.NoError(t, r.DB.Model(hidden).Update("available", false).Error)
	storetest.Product(t, r, "Chair", "40.00", 1)

	t.Run("sql fallback", func(t *testing.T) {
		svc := &CatalogService{Repo: r}
		total, items, err := svc.Search(ctx, "LAMP", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, b.ID, items[1].ID)
	})

	t.Run("index order is kept", func(t *testing.T) {
		svc := &CatalogService{Repo: r, Index: &fakeIndex{hits: []uint{b.ID, a.ID}}}
		total, items, err := svc.Search(ctx, "lamp", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, b.ID, items[0].ID)
	})

	t.Run("index failure falls back", func(t *testing.T) {
		svc := &CatalogService{Repo: r, Index: &fakeIndex{err: errors.New("cluster down")}}
		total, _, err := svc.Search(ctx, "lamp", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("blank query", func(t *testing.T) {
		svc := &CatalogService{Repo: r}
		_, _, err := svc.Search(ctx, "  ", 0, 10)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestCatalogService_ListAndCategories(t *testing.T) {
	t.Parallel()

	r := storetest.Open(t)
	ctx := context.Background()
	svc := &CatalogService{Repo: r}

	audio, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Audio", Icon: "speaker"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Audio"})
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{})
	require.ErrorIs(t, err, ErrValidation)

	speaker := storetest.Product(t, r, "Speaker", "99.00", 2)
	require.NoError(t, r.DB.Model(speaker).Update("category_id", audio.ID).Error)
	storetest.Product(t, r, "Cable", "3.00", 2)

	total, items, err := svc.GetProducts(ctx, repo.ProductFilter{CategoryID: &audio.ID, OnlyAvailable: true}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Audio", items[0].Category.Name)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
