package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/http/middleware"
	"transferregistry/internal/services"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context

	companies *services.CompanyService
	entries   *services.DataEntryService
	stats     *services.StatsService
	importer  *services.ImportService
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	companies := services.NewCompanyService(ctx)
	entries := services.NewDataEntryService(ctx)

	service := &APIService{
		engine:  engine,
		context: ctx,

		companies: companies,
		entries:   entries,
		stats:     services.NewStatsService(ctx),
		importer:  services.NewImportService(ctx, companies, entries),
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.setupCompanyRoutes()
	h.setupDataEntryRoutes()
	h.setupStatsRoutes()

	h.engine.Static("/static", "./static")
	h.engine.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
	h.engine.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	h.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})
}

func (h *APIService) setupCompanyRoutes() {
	companies := h.engine.Group("/companies")

	companies.GET("", ListCompanies(h.context, h.companies))
	companies.POST("", CreateCompany(h.context, h.companies))
	companies.GET("/:id", GetCompany(h.context, h.companies))
	companies.DELETE("/:id", DeleteCompany(h.context, h.companies))
}

func (h *APIService) setupDataEntryRoutes() {
	entries := h.engine.Group("/data-entries")

	entries.GET("", ListDataEntries(h.context, h.entries))
	entries.POST("", CreateDataEntry(h.context, h.entries))
	entries.POST("/upload-csv", UploadBatch(h.context, h.importer))
	entries.GET("/:id", GetDataEntry(h.context, h.entries))
	entries.PUT("/:id", UpdateDataEntry(h.context, h.entries))
	entries.DELETE("/:id", DeleteDataEntry(h.context, h.entries))
}

func (h *APIService) setupStatsRoutes() {
	stats := h.engine.Group("/stats")

	stats.GET("", GetGlobalStats(h.context, h.stats))
	stats.GET("/company/:id", GetCompanyStats(h.context, h.stats))
	stats.GET("/data-set-count", GetDataSetCount(h.context, h.stats))
}
