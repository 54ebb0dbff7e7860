package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"shopfeed/internal/resolve"
	"shopfeed/internal/validate"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStoreFromDB(db), mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestGetShop_DecodesMapping(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"shop_id", "checkout_enabled", "currency", "weight_unit", "dimension_unit",
		"seller_name", "shipping_label", "return_policy_label", "transit_time_label",
		"mapping",
	}).AddRow(
		"shop-1", true, "EUR", "kg", "cm",
		"Demo Sports", "standard", "", "",
		[]byte(`{"title":"custom_name"}`),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM shops WHERE shop_id = $1`)).
		WithArgs("shop-1").WillReturnRows(rows)

	shop, err := s.GetShop(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("GetShop returned error: %v", err)
	}
	if !shop.CheckoutEnabled {
		t.Error("expected checkout_enabled to be true")
	}
	if shop.Context.Currency != "EUR" {
		t.Errorf("unexpected currency: %s", shop.Context.Currency)
	}
	if shop.Mapping["title"] != "custom_name" {
		t.Errorf("mapping not decoded: %v", shop.Mapping)
	}
	expectMet(t, mock)
}

func TestGetShop_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shops WHERE shop_id = $1`)).
		WithArgs("ghost").WillReturnRows(sqlmock.NewRows([]string{"shop_id"}))

	_, err := s.GetShop(context.Background(), "ghost")
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestGetProduct_DecodesOverrides(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"product_id", "shop_id", "adult", "source_record", "overrides",
	}).AddRow(
		"p-01", "shop-1", false,
		[]byte(`{"title":"Shoe"}`),
		[]byte(`{"title":{"kind":"static","value":"Pinned"},"color":{"kind":"mapping","value":null}}`),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE product_id = $1`)).
		WithArgs("p-01").WillReturnRows(rows)

	p, err := s.GetProduct(context.Background(), "p-01")
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}

	ov, ok := p.Overrides["title"]
	if !ok || ov.Kind != resolve.StaticOverride || ov.Value == nil || *ov.Value != "Pinned" {
		t.Errorf("static override not decoded: %+v", p.Overrides)
	}
	excl, ok := p.Overrides["color"]
	if !ok || excl.Kind != resolve.MappingOverride || excl.Value != nil {
		t.Errorf("exclusion not decoded: %+v", p.Overrides)
	}
	expectMet(t, mock)
}

func TestSaveResolution_WritesBothColumnsTogether(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET resolved = $2, validation = $3, reprocessed_at = NOW()`)).
		WithArgs("p-01", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resolved := resolve.ValueSet{"title": "Shoe"}
	result := validate.Result{Valid: true}
	if err := s.SaveResolution(context.Background(), "p-01", resolved, result); err != nil {
		t.Fatalf("SaveResolution returned error: %v", err)
	}
	expectMet(t, mock)
}

func TestSaveResolution_UnknownProduct(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET resolved = $2, validation = $3, reprocessed_at = NOW()`)).
		WithArgs("ghost", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SaveResolution(context.Background(), "ghost", resolve.ValueSet{}, validate.Result{})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	expectMet(t, mock)
}

func TestMergeOverride_PatchesSingleKey(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET overrides = jsonb_set(COALESCE(overrides, '{}'::jsonb), ARRAY[$2], $3::jsonb, true)`)).
		WithArgs("p-01", "title", []byte(`{"kind":"static","value":"Pinned"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pinned := "Pinned"
	ov := &resolve.Override{Kind: resolve.StaticOverride, Value: &pinned}
	if err := s.MergeOverride(context.Background(), "p-01", "title", ov); err != nil {
		t.Fatalf("MergeOverride returned error: %v", err)
	}
	expectMet(t, mock)
}

func TestMergeOverride_NilRemovesKey(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET overrides = overrides - $2`)).
		WithArgs("p-01", "title").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.MergeOverride(context.Background(), "p-01", "title", nil); err != nil {
		t.Fatalf("MergeOverride returned error: %v", err)
	}
	expectMet(t, mock)
}

func TestSetShopMapping(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET mapping = jsonb_set(COALESCE(mapping, '{}'::jsonb), ARRAY[$2], $3::jsonb, true)`)).
		WithArgs("shop-1", "title", []byte(`"custom_name"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	path := "custom_name"
	if err := s.SetShopMapping(context.Background(), "shop-1", "title", &path); err != nil {
		t.Fatalf("SetShopMapping returned error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(`SET mapping = mapping - $2`)).
		WithArgs("shop-1", "title").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.SetShopMapping(context.Background(), "shop-1", "title", nil); err != nil {
		t.Fatalf("SetShopMapping returned error: %v", err)
	}
	expectMet(t, mock)
}

func TestCountOverridesForAttribute(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE shop_id = $1 AND overrides ? $2`)).
		WithArgs("shop-1", "title").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountOverridesForAttribute(context.Background(), "shop-1", "title")
	if err != nil {
		t.Fatalf("CountOverridesForAttribute returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
	expectMet(t, mock)
}

func TestRemoveOverridesForAttribute(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`SET overrides = overrides - $2`)).
		WithArgs("shop-1", "title").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := s.RemoveOverridesForAttribute(context.Background(), "shop-1", "title")
	if err != nil {
		t.Fatalf("RemoveOverridesForAttribute returned error: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 affected rows, got %d", n)
	}
	expectMet(t, mock)
}

func TestListProductIDs_KeysetPaging(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"product_id"}).AddRow("p-02").AddRow("p-03")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE shop_id = $1 AND product_id > $2`)).
		WithArgs("shop-1", "p-01", 2).WillReturnRows(rows)

	ids, err := s.ListProductIDs(context.Background(), "shop-1", "p-01", 2)
	if err != nil {
		t.Fatalf("ListProductIDs returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "p-02" || ids[1] != "p-03" {
		t.Errorf("unexpected ids: %v", ids)
	}
	expectMet(t, mock)
}

func TestListProductIDsWithoutOverride(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"product_id"}).AddRow("p-01")
	mock.ExpectQuery(regexp.QuoteMeta(`AND NOT overrides ? $3`)).
		WithArgs("shop-1", "", "title", 10).WillReturnRows(rows)

	ids, err := s.ListProductIDsWithoutOverride(context.Background(), "shop-1", "title", "", 10)
	if err != nil {
		t.Fatalf("ListProductIDsWithoutOverride returned error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "p-01" {
		t.Errorf("unexpected ids: %v", ids)
	}
	expectMet(t, mock)
}

func TestGetResolution(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"resolved", "validation"}).AddRow(
		[]byte(`{"title":"Shoe"}`),
		[]byte(`{"valid":true,"errors":{},"warnings":{}}`),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT resolved, validation FROM products WHERE product_id = $1`)).
		WithArgs("p-01").WillReturnRows(rows)

	resolved, result, err := s.GetResolution(context.Background(), "p-01")
	if err != nil {
		t.Fatalf("GetResolution returned error: %v", err)
	}
	if resolved.GetString("title") != "Shoe" {
		t.Errorf("unexpected resolved set: %v", resolved)
	}
	if result == nil || !result.Valid {
		t.Errorf("unexpected validation result: %+v", result)
	}
	expectMet(t, mock)
}
