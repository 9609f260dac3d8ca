package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
)

type fakeCatalogStore struct {
	seq     int
	cats    map[string]*entity.Category
	subs    map[string]*entity.SubCategory
	subsubs map[string]*entity.SubSubCategory
	prods   map[string]*entity.Product
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		cats:    map[string]*entity.Category{},
		subs:    map[string]*entity.SubCategory{},
		subsubs: map[string]*entity.SubSubCategory{},
		prods:   map[string]*entity.Product{},
	}
}

func (f *fakeCatalogStore) nextID() string {
	f.seq++
	return fmt.Sprintf("id-%d", f.seq)
}

type fakeCategoryRepo struct{ s *fakeCatalogStore }

func (r fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	c.ID = r.s.nextID()
	cp := *c
	r.s.cats[c.ID] = &cp
	return nil
}

func (r fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if c, ok := r.s.cats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.s.cats {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.s.cats))
	for _, c := range r.s.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (r fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.s.cats[c.ID] = &cp
	return nil
}

func (r fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.cats, id)
	return nil
}

func (r fakeCategoryRepo) CountChildren(_ context.Context, id string) (int, error) {
	n := 0
	for _, sc := range r.s.subs {
		if sc.CategoryID == id {
			n++
		}
	}
	return n, nil
}

type fakeSubCategoryRepo struct{ s *fakeCatalogStore }

func (r fakeSubCategoryRepo) Create(_ context.Context, c *entity.SubCategory) error {
	c.ID = r.s.nextID()
	cp := *c
	r.s.subs[c.ID] = &cp
	return nil
}

func (r fakeSubCategoryRepo) GetByID(_ context.Context, id string) (*entity.SubCategory, error) {
	if c, ok := r.s.subs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r fakeSubCategoryRepo) GetByName(_ context.Context, categoryID, name string) (*entity.SubCategory, error) {
	for _, c := range r.s.subs {
		if c.CategoryID == categoryID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeSubCategoryRepo) ListByCategory(_ context.Context, categoryID string) ([]entity.SubCategory, error) {
	var out []entity.SubCategory
	for _, c := range r.s.subs {
		if categoryID == "" || c.CategoryID == categoryID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r fakeSubCategoryRepo) Update(_ context.Context, c *entity.SubCategory) error {
	cp := *c
	r.s.subs[c.ID] = &cp
	return nil
}

func (r fakeSubCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.subs, id)
	return nil
}

func (r fakeSubCategoryRepo) CountChildren(_ context.Context, id string) (int, error) {
	n := 0
	for _, c := range r.s.subsubs {
		if c.SubCategoryID == id {
			n++
		}
	}
	return n, nil
}

type fakeSubSubCategoryRepo struct{ s *fakeCatalogStore }

func (r fakeSubSubCategoryRepo) Create(_ context.Context, c *entity.SubSubCategory) error {
	c.ID = r.s.nextID()
	cp := *c
	r.s.subsubs[c.ID] = &cp
	return nil
}

func (r fakeSubSubCategoryRepo) GetByID(_ context.Context, id string) (*entity.SubSubCategory, error) {
	if c, ok := r.s.subsubs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r fakeSubSubCategoryRepo) GetByName(_ context.Context, subCategoryID, name string) (*entity.SubSubCategory, error) {
	for _, c := range r.s.subsubs {
		if c.SubCategoryID == subCategoryID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeSubSubCategoryRepo) ListBySubCategory(_ context.Context, subCategoryID string) ([]entity.SubSubCategory, error) {
	var out []entity.SubSubCategory
	for _, c := range r.s.subsubs {
		if subCategoryID == "" || c.SubCategoryID == subCategoryID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r fakeSubSubCategoryRepo) Update(_ context.Context, c *entity.SubSubCategory) error {
	cp := *c
	r.s.subsubs[c.ID] = &cp
	return nil
}

func (r fakeSubSubCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.subsubs, id)
	return nil
}

func (r fakeSubSubCategoryRepo) CountProducts(_ context.Context, id string) (int, error) {
	n := 0
	for _, p := range r.s.prods {
		if p.SubSubCategoryID == id {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct{ s *fakeCatalogStore }

func (r fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = r.s.nextID()
	cp := *p
	r.s.prods[p.ID] = &cp
	return nil
}

func (r fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.prods[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.s.prods {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeProductRepo) List(_ context.Context, categoryID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.s.prods {
		if categoryID == "" || p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.prods[p.ID] = &cp
	return nil
}

func (r fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.prods, id)
	return nil
}

func newTestCatalog() (*CatalogService, *fakeCatalogStore) {
	store := newFakeCatalogStore()
	svc := NewCatalogService(
		fakeCategoryRepo{store},
		fakeSubCategoryRepo{store},
		fakeSubSubCategoryRepo{store},
		fakeProductRepo{store},
		nil, "", nil, "", nil,
	)
	return svc, store
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Electronics":          "electronics",
		"Home & Kitchen":       "home-kitchen",
		"  Spaces  Around  ":   "spaces-around",
		"MiXeD CaSe 123":       "mixed-case-123",
		"already-a-slug":       "already-a-slug",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "Electronics", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, "Electronics", ""); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate = %v, want ErrAlreadyExists", err)
	}
}

func TestDeleteCategoryBlockedByChildren(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Electronics", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	sub, err := svc.CreateSubCategory(ctx, cat.ID, "Phones", "")
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}

	if err := svc.DeleteCategory(ctx, cat.ID); !errors.Is(err, ErrHasChildren) {
		t.Fatalf("delete with children = %v, want ErrHasChildren", err)
	}
	if err := svc.DeleteSubCategory(ctx, sub.ID); err != nil {
		t.Fatalf("delete subcategory: %v", err)
	}
	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
}

func TestCreateSubCategoryRequiresParent(t *testing.T) {
	svc, _ := newTestCatalog()
	if _, err := svc.CreateSubCategory(context.Background(), "missing", "Phones", ""); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("orphan subcategory = %v, want ErrParentNotFound", err)
	}
}

func TestDeleteSubSubCategoryBlockedByProducts(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	cat, _ := svc.CreateCategory(ctx, "Electronics", "")
	sub, _ := svc.CreateSubCategory(ctx, cat.ID, "Phones", "")
	subsub, err := svc.CreateSubSubCategory(ctx, sub.ID, "Android", "")
	if err != nil {
		t.Fatalf("create subsubcategory: %v", err)
	}

	p, err := svc.CreateProduct(ctx, ProductInput{
		CategoryID:       cat.ID,
		SubCategoryID:    sub.ID,
		SubSubCategoryID: subsub.ID,
		Name:             "Pixel 9",
		Price:            699,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteSubSubCategory(ctx, subsub.ID); !errors.Is(err, ErrHasChildren) {
		t.Fatalf("delete with products = %v, want ErrHasChildren", err)
	}
	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := svc.DeleteSubSubCategory(ctx, subsub.ID); err != nil {
		t.Fatalf("delete empty subsubcategory: %v", err)
	}
}

func TestCreateProductSlugUnique(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	cat, _ := svc.CreateCategory(ctx, "Electronics", "")
	if _, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Pixel 9", Price: 699}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// different casing, same slug
	if _, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "PIXEL 9", Price: 699}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("slug collision = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateProductKeepsFieldsWhenEmpty(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	cat, _ := svc.CreateCategory(ctx, "Electronics", "")
	p, err := svc.CreateProduct(ctx, ProductInput{
		CategoryID:  cat.ID,
		Name:        "Pixel 9",
		Description: "a phone",
		Price:       699,
		Stock:       5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.UpdateProduct(ctx, p.ID, ProductInput{Price: 649, Stock: -1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Pixel 9" || got.Description != "a phone" || got.Stock != 5 {
		t.Errorf("unset fields were clobbered: %+v", got)
	}
	if got.Price != 649 {
		t.Errorf("price = %v, want 649", got.Price)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newTestCatalog()
	if _, err := svc.GetProduct(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product = %v, want ErrNotFound", err)
	}
}

func TestSearchProductsWithoutES(t *testing.T) {
	svc, _ := newTestCatalog()
	out, err := svc.SearchProducts(context.Background(), "pixel", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("search without es returned %d hits", len(out))
	}
}
