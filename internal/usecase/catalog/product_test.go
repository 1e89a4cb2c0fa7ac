package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/infra/repository"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/testutil"
	"github.com/BruksfildServices01/champa-store/internal/usecase/catalog"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func seedProduct(t *testing.T, create *catalog.CreateProduct, name string) *models.Product {
	t.Helper()
	p, err := create.Execute(context.Background(), 1, domain.ProductInput{
		Name:        name,
		Price:       decimal.RequireFromString("25.00"),
		Stock:       intPtr(10),
		Description: strPtr("Gentle daily cleanser"),
		Category:    strPtr("skincare"),
		PriceType:   strPtr("1-10"),
	})
	require.NoError(t, err)
	return p
}

func TestUpdateProduct_PartialKeepsOtherFields(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	create := catalog.NewCreateProduct(repo, nil)
	update := catalog.NewUpdateProduct(repo, nil, nil)

	p := seedProduct(t, create, "Cleanser")

	var patch domain.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"price": 19.9}`), &patch))

	got, err := update.Execute(context.Background(), 1, p.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, "19.90", got.Price.StringFixed(2))
	assert.Equal(t, "Cleanser", got.Name)
	require.NotNil(t, got.Stock)
	assert.Equal(t, 10, *got.Stock)
	assert.Equal(t, "Gentle daily cleanser", *got.Description)
	assert.Equal(t, "skincare", *got.Category)
	assert.Equal(t, "1-10", *got.PriceType)
}

func TestUpdateProduct_NullClearsOptionalField(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	p := seedProduct(t, catalog.NewCreateProduct(repo, nil), "Cleanser")

	var patch domain.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "stock": null}`), &patch))

	got, err := catalog.NewUpdateProduct(repo, nil, nil).Execute(context.Background(), 1, p.ID, patch)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Stock)
	assert.Equal(t, "skincare", *got.Category)
}

func TestUpdateProduct_Errors(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	update := catalog.NewUpdateProduct(repo, nil, nil)
	p := seedProduct(t, catalog.NewCreateProduct(repo, nil), "Cleanser")

	var patch domain.ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"price": -1}`), &patch))

	_, err := update.Execute(context.Background(), 1, p.ID, patch)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPrice))

	_, err = update.Execute(context.Background(), 1, 9999, domain.ProductPatch{})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	got, err := catalog.NewGetProduct(repo).Execute(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", got.Price.StringFixed(2))
}

func TestCreateProduct_Validation(t *testing.T) {
	db := testutil.TestDB(t)
	create := catalog.NewCreateProduct(repository.NewProductGormRepository(db), nil)

	_, err := create.Execute(context.Background(), 1, domain.ProductInput{Name: "x", Price: decimal.NewFromInt(-5)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPrice))

	_, err = create.Execute(context.Background(), 1, domain.ProductInput{Name: "x", Stock: intPtr(-1)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStock))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListAndDeleteProducts(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	create := catalog.NewCreateProduct(repo, nil)

	first := seedProduct(t, create, "First")
	second := seedProduct(t, create, "Second")

	list, err := catalog.NewListProducts(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	del := catalog.NewDeleteProduct(repo, nil, nil)
	require.NoError(t, del.Execute(context.Background(), 1, first.ID))

	err = del.Execute(context.Background(), 1, first.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = catalog.NewGetProduct(repo).Execute(context.Background(), first.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

type recordingFiles struct {
	refs []string
}

func (f *recordingFiles) Discard(_ context.Context, refs ...string) {
	f.refs = append(f.refs, refs...)
}

func TestDeleteProduct_DiscardsProductAndReviewImages(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	ctx := context.Background()

	p, err := catalog.NewCreateProduct(repo, nil).Execute(ctx, 1, domain.ProductInput{
		Name:  "Poster",
		Image: strPtr("/static/uploads/products/a.webp"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.ProductReview{
		ProductID:    p.ID,
		CustomerName: "Noy",
		Rating:       5,
		Images:       models.StringList{"/static/uploads/reviews/b.webp", "/static/uploads/reviews/c.webp"},
	}).Error)
	require.NoError(t, db.Create(&models.ProductReview{ProductID: p.ID, CustomerName: "Kham", Rating: 4}).Error)

	files := &recordingFiles{}
	require.NoError(t, catalog.NewDeleteProduct(repo, nil, files).Execute(ctx, 1, p.ID))

	assert.ElementsMatch(t, []string{
		"/static/uploads/products/a.webp",
		"/static/uploads/reviews/b.webp",
		"/static/uploads/reviews/c.webp",
	}, files.refs)
}

func TestDeleteProduct_MissingDiscardsNothing(t *testing.T) {
	repo := repository.NewProductGormRepository(testutil.TestDB(t))
	files := &recordingFiles{}

	err := catalog.NewDeleteProduct(repo, nil, files).Execute(context.Background(), 1, 404)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	assert.Empty(t, files.refs)
}

func TestUpdateProduct_DiscardsReplacedImage(t *testing.T) {
	db := testutil.TestDB(t)
	repo := repository.NewProductGormRepository(db)
	ctx := context.Background()

	p, err := catalog.NewCreateProduct(repo, nil).Execute(ctx, 1, domain.ProductInput{
		Name:  "Poster",
		Image: strPtr("/static/uploads/products/old.webp"),
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"other field", `{"name": "Poster v2"}`, nil},
		{"same image", `{"image": "/static/uploads/products/old.webp"}`, nil},
		{"new image", `{"image": "/static/uploads/products/new.webp"}`, []string{"/static/uploads/products/old.webp"}},
		{"cleared", `{"image": null}`, []string{"/static/uploads/products/new.webp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch domain.ProductPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))

			files := &recordingFiles{}
			_, err := catalog.NewUpdateProduct(repo, nil, files).Execute(ctx, 1, p.ID, patch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, files.refs)
		})
	}
}
