package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazarhub/catalog-api/internal/container"
	handlers "github.com/bazarhub/catalog-api/internal/interface/http"
	"github.com/bazarhub/catalog-api/internal/interface/middleware"
)

// CatalogModule exposes category and product routes.
// Reads are public; mutations require a bearer token.
type CatalogModule struct {
	Catalog  *handlers.CatalogHandler
	Products *handlers.ProductHandler
}

func NewCatalogModule(catalog *handlers.CatalogHandler, products *handlers.ProductHandler) *CatalogModule {
	return &CatalogModule{Catalog: catalog, Products: products}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Catalog.ListCategories)
	rg.GET("/categories/:id", m.Catalog.GetCategory)
	rg.GET("/subcategories", m.Catalog.ListSubCategories)
	rg.GET("/subcategories/:id", m.Catalog.GetSubCategory)
	rg.GET("/subsubcategories", m.Catalog.ListSubSubCategories)
	rg.GET("/subsubcategories/:id", m.Catalog.GetSubSubCategory)

	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/products", m.Products.List)
	rg.GET("/products/search", searchLimiter, m.Products.Search)
	rg.GET("/products/:id", m.Products.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/categories", m.Catalog.CreateCategory)
		auth.PUT("/categories/:id", m.Catalog.UpdateCategory)
		auth.DELETE("/categories/:id", m.Catalog.DeleteCategory)

		auth.POST("/subcategories", m.Catalog.CreateSubCategory)
		auth.PUT("/subcategories/:id", m.Catalog.UpdateSubCategory)
		auth.DELETE("/subcategories/:id", m.Catalog.DeleteSubCategory)

		auth.POST("/subsubcategories", m.Catalog.CreateSubSubCategory)
		auth.PUT("/subsubcategories/:id", m.Catalog.UpdateSubSubCategory)
		auth.DELETE("/subsubcategories/:id", m.Catalog.DeleteSubSubCategory)

		auth.POST("/products", m.Products.Create)
		auth.PUT("/products/:id", m.Products.Update)
		auth.DELETE("/products/:id", m.Products.Delete)
		auth.POST("/products/:id/image", m.Products.UploadImage)
	}
}
