package http

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/services"
	"transferregistry/internal/utils"
)

// UploadBatch ingests a CSV or XLSX file of data entry rows. Individual row
// failures are reported in the result; only an unreadable file fails the
// request.
func UploadBatch(ctx *appcontext.Context, importer *services.ImportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := formFile(c)
		if err != nil {
			ctx.Logger.Error("Failed to get file from request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
			return
		}

		src, err := file.Open()
		if err != nil {
			ctx.Logger.Error("Failed to open file", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
			return
		}
		defer src.Close()

		var rows []services.Row
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".csv":
			rows, err = utils.RowsFromCSV(src)
		case ".xlsx":
			rows, err = utils.RowsFromXLSX(src)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type, only CSV and XLSX files are allowed"})
			return
		}
		if err != nil {
			respondError(c, ctx, err)
			return
		}

		opts := services.ImportOptions{
			CreateMissingCompanies: c.PostForm("create_missing") == "true",
		}

		result := importer.ImportRows(c.Request.Context(), rows, opts)
		c.JSON(http.StatusOK, result)
	}
}

// formFile accepts the frontend's historical "csv_file" field name as well as
// a plain "file" field.
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("csv_file")
	if err == nil {
		return file, nil
	}
	return c.FormFile("file")
}
