package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/domain/entity"
	repo "github.com/bazarhub/catalog-api/internal/domain/repository"
	"github.com/bazarhub/catalog-api/pkg/helpers"
)

var (
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrHasChildren    = errors.New("children exist, delete them first")
	ErrParentNotFound = errors.New("parent does not exist")
)

// CatalogService owns the category hierarchy and products.
type CatalogService struct {
	Categories    repo.CategoryRepository
	SubCategories repo.SubCategoryRepository
	SubSubs       repo.SubSubCategoryRepository
	Products      repo.ProductRepository

	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewCatalogService(cats repo.CategoryRepository, subs repo.SubCategoryRepository, subsubs repo.SubSubCategoryRepository, products repo.ProductRepository, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Categories:    cats,
		SubCategories: subs,
		SubSubs:       subsubs,
		Products:      products,
		ES:            es,
		ESIndex:       esIndex,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		Logger:        logger,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and collapses everything non-alphanumeric to dashes.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, name, imageURL string) (*entity.Category, error) {
	existing, err := s.Categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	c := &entity.Category{Name: name, Slug: Slugify(name), ImageURL: imageURL}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name, imageURL string) (*entity.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" && name != c.Name {
		dup, err := s.Categories.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrAlreadyExists
		}
		c.Name = name
		c.Slug = Slugify(name)
	}
	if imageURL != "" {
		c.ImageURL = imageURL
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to delete while subcategories still point here.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.Categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasChildren
	}
	return s.Categories.Delete(ctx, id)
}

// --- SubCategories ---

func (s *CatalogService) CreateSubCategory(ctx context.Context, categoryID, name, imageURL string) (*entity.SubCategory, error) {
	parent, err := s.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}
	existing, err := s.SubCategories.GetByName(ctx, categoryID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	c := &entity.SubCategory{CategoryID: categoryID, Name: name, Slug: Slugify(name), ImageURL: imageURL}
	if err := s.SubCategories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetSubCategory(ctx context.Context, id string) (*entity.SubCategory, error) {
	c, err := s.SubCategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *CatalogService) ListSubCategories(ctx context.Context, categoryID string) ([]entity.SubCategory, error) {
	return s.SubCategories.ListByCategory(ctx, categoryID)
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id, name, imageURL string) (*entity.SubCategory, error) {
	c, err := s.GetSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" && name != c.Name {
		dup, err := s.SubCategories.GetByName(ctx, c.CategoryID, name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrAlreadyExists
		}
		c.Name = name
		c.Slug = Slugify(name)
	}
	if imageURL != "" {
		c.ImageURL = imageURL
	}
	if err := s.SubCategories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id string) error {
	if _, err := s.GetSubCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.SubCategories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasChildren
	}
	return s.SubCategories.Delete(ctx, id)
}

// --- SubSubCategories ---

func (s *CatalogService) CreateSubSubCategory(ctx context.Context, subCategoryID, name, imageURL string) (*entity.SubSubCategory, error) {
	parent, err := s.SubCategories.GetByID(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}
	existing, err := s.SubSubs.GetByName(ctx, subCategoryID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	c := &entity.SubSubCategory{SubCategoryID: subCategoryID, Name: name, Slug: Slugify(name), ImageURL: imageURL}
	if err := s.SubSubs.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetSubSubCategory(ctx context.Context, id string) (*entity.SubSubCategory, error) {
	c, err := s.SubSubs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *CatalogService) ListSubSubCategories(ctx context.Context, subCategoryID string) ([]entity.SubSubCategory, error) {
	return s.SubSubs.ListBySubCategory(ctx, subCategoryID)
}

func (s *CatalogService) UpdateSubSubCategory(ctx context.Context, id, name, imageURL string) (*entity.SubSubCategory, error) {
	c, err := s.GetSubSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" && name != c.Name {
		dup, err := s.SubSubs.GetByName(ctx, c.SubCategoryID, name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrAlreadyExists
		}
		c.Name = name
		c.Slug = Slugify(name)
	}
	if imageURL != "" {
		c.ImageURL = imageURL
	}
	if err := s.SubSubs.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteSubSubCategory(ctx context.Context, id string) error {
	if _, err := s.GetSubSubCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.SubSubs.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasChildren
	}
	return s.SubSubs.Delete(ctx, id)
}

// --- Products ---

type ProductInput struct {
	CategoryID       string
	SubCategoryID    string
	SubSubCategoryID string
	Name             string
	Description      string
	Price            float64
	Stock            int
	ImageURL         string
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	parent, err := s.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}
	slug := Slugify(in.Name)
	dup, err := s.Products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrAlreadyExists
	}
	p := &entity.Product{
		CategoryID:       in.CategoryID,
		SubCategoryID:    in.SubCategoryID,
		SubSubCategoryID: in.SubSubCategoryID,
		Name:             in.Name,
		Slug:             slug,
		Description:      in.Description,
		Price:            in.Price,
		Stock:            in.Stock,
		ImageURL:         in.ImageURL,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return s.Products.List(ctx, categoryID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != p.Name {
		slug := Slugify(in.Name)
		dup, err := s.Products.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != p.ID {
			return nil, ErrAlreadyExists
		}
		p.Name = in.Name
		p.Slug = slug
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.Stock >= 0 {
		p.Stock = in.Stock
	}
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteProductIndex(ctx, id)
	return nil
}

// UploadProductImage stores an uploaded image in GCS and attaches its
// public URL to the product.
func (s *CatalogService) UploadProductImage(ctx context.Context, id string, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", p.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return "", err
	}
	s.indexProduct(ctx, p)
	return url, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"category_id": p.CategoryID,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteProductIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProducts performs a multi_match search on name and description.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
