package router

import (
	"github.com/gin-gonic/gin"
)

// CustomerRoutesHandler is implemented by handler.CustomerHandler
type CustomerRoutesHandler interface {
	List(c *gin.Context)
	Show(c *gin.Context)
	CreateForm(c *gin.Context)
	Store(c *gin.Context)
	Duplicate(c *gin.Context)
	Import(c *gin.Context)
	EditForm(c *gin.Context)
	Update(c *gin.Context)
	Enable(c *gin.Context)
	Disable(c *gin.Context)
	Destroy(c *gin.Context)
	Currency(c *gin.Context)
	Inline(c *gin.Context)
	Field(c *gin.Context)
}

// CustomerRoutes builds the /incomes/customers group
func CustomerRoutes(h CustomerRoutesHandler) *DomainGroup {
	incomes := NewDomainGroup("incomes", "/incomes")
	customers := incomes.Group("customers", "/customers")

	customers.GET("", h.List)
	customers.POST("", h.Store)
	customers.GET("/create", h.CreateForm)
	customers.GET("/currency", h.Currency)
	customers.POST("/inline", h.Inline)
	customers.POST("/field", h.Field)
	customers.POST("/import", h.Import)

	customers.GET("/:id", h.Show)
	customers.GET("/:id/edit", h.EditForm)
	customers.PUT("/:id", h.Update)
	customers.DELETE("/:id", h.Destroy)
	customers.POST("/:id/duplicate", h.Duplicate)
	customers.POST("/:id/enable", h.Enable)
	customers.POST("/:id/disable", h.Disable)
	return incomes
}

// SystemRoutesHandler is implemented by handler.SystemHandler
type SystemRoutesHandler interface {
	GetSystemInfo(c *gin.Context)
}

// SystemRoutes builds the /system group
func SystemRoutes(h SystemRoutesHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").GET("/info", h.GetSystemInfo)
}
