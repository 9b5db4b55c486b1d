package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/services"
)

func GetCompanyStats(ctx *appcontext.Context, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		result, err := stats.CompanyStats(c.Request.Context(), id)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetDataSetCount(ctx *appcontext.Context, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyName := c.Query("company_name")
		dataSet := c.Query("data_set")

		count, err := stats.DataSetCount(c.Request.Context(), companyName, dataSet)
		if err != nil {
			respondError(c, ctx, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"company_name": companyName,
			"data_set":     dataSet,
			"count":        count,
		})
	}
}

func GetGlobalStats(ctx *appcontext.Context, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := stats.GlobalStats(c.Request.Context())
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
