package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/services"
)

func ListDataEntries(ctx *appcontext.Context, entries *services.DataEntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.EntryFilter{
			CompanyName: c.Query("company_name"),
			UID:         c.Query("uid"),
			DataSet:     c.Query("data_set"),
		}

		result, err := entries.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func CreateDataEntry(ctx *appcontext.Context, entries *services.DataEntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createEntryRequest struct {
			CompanyID   *int64 `json:"company_id"`
			DeviceType  string `json:"device_type"`
			UID         string `json:"uid"`
			DataType    string `json:"data_type"`
			DataSet     string `json:"data_set"`
			DataGoingTo string `json:"data_going_to"`
		}

		var request createEntryRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}
		if request.CompanyID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
			return
		}

		entry, err := entries.Create(c.Request.Context(), services.CreateEntryInput{
			CompanyID:   *request.CompanyID,
			DeviceType:  request.DeviceType,
			UID:         request.UID,
			DataType:    request.DataType,
			DataSet:     request.DataSet,
			DataGoingTo: request.DataGoingTo,
		})
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func GetDataEntry(ctx *appcontext.Context, entries *services.DataEntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		entry, err := entries.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func UpdateDataEntry(ctx *appcontext.Context, entries *services.DataEntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		type updateEntryRequest struct {
			DeviceType  *string `json:"device_type"`
			UID         *string `json:"uid"`
			DataType    *string `json:"data_type"`
			DataSet     *string `json:"data_set"`
			DataGoingTo *string `json:"data_going_to"`
		}

		var request updateEntryRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
			return
		}

		entry, err := entries.Update(c.Request.Context(), id, services.UpdateEntryInput{
			DeviceType:  request.DeviceType,
			UID:         request.UID,
			DataType:    request.DataType,
			DataSet:     request.DataSet,
			DataGoingTo: request.DataGoingTo,
		})
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func DeleteDataEntry(ctx *appcontext.Context, entries *services.DataEntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := entries.Delete(c.Request.Context(), id); err != nil {
			respondError(c, ctx, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Data entry deleted successfully"})
	}
}
