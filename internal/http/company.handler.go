package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/services"
)

func ListCompanies(ctx *appcontext.Context, companies *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := companies.List(c.Request.Context())
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func CreateCompany(ctx *appcontext.Context, companies *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createCompanyRequest struct {
			Name string `json:"name"`
		}

		var request createCompanyRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
			return
		}

		company, err := companies.Create(c.Request.Context(), request.Name)
		if err != nil {
			respondError(c, ctx, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         company.ID,
			"name":       company.Name,
			"created_at": company.CreatedAt,
			"message":    "Company created successfully",
		})
	}
}

func GetCompany(ctx *appcontext.Context, companies *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		company, err := companies.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, company)
	}
}

func DeleteCompany(ctx *appcontext.Context, companies *services.CompanyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := companies.Delete(c.Request.Context(), id); err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
	}
}
