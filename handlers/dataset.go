package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"datachat/apperr"
	"datachat/models"

	"github.com/gin-gonic/gin"
)

// GetDatasetHandler returns the current dataset preview
// @Summary      Current dataset
// @Description  Preview rows, column kinds and chart axis candidates of the uploaded file
// @Tags         Dataset
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  service.DatasetView
// @Failure      404  {object}  models.ErrorResponse  "No dataset uploaded"
// @Router       /api/dataset [get]
func (h *Handlers) GetDatasetHandler(c *gin.Context) {
	view, err := h.dashboard.Dataset(sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UploadDatasetHandler uploads a CSV or XLSX file
// @Summary      Upload dataset
// @Description  Parses a .csv or .xlsx file and replaces the session dataset. A failed upload clears the dataset.
// @Tags         Dataset
// @Accept       multipart/form-data
// @Produce      json
// @Security     SessionCookie
// @Param        file  formData  file  true  "CSV or Excel file"
// @Success      200   {object}  service.DatasetView
// @Failure      400   {object}  models.ErrorResponse  "UPLOAD_FAILED or INVALID_INPUT"
// @Router       /api/dataset [post]
func (h *Handlers) UploadDatasetHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if uploadTooLarge(err) {
			h.fail(c, apperr.InvalidInput(fmt.Sprintf("File is larger than %dMB", h.maxUploadBytes>>20)))
			return
		}
		h.fail(c, apperr.InvalidInput("Missing form field \"file\""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, apperr.UploadFailed(err))
		return
	}
	defer file.Close()

	view, err := h.dashboard.Upload(c.Request.Context(), sessionID(c), fileHeader.Filename, file)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearDatasetHandler forgets the uploaded file
// @Summary      Clear dataset
// @Tags         Dataset
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  models.StatusResponse
// @Router       /api/dataset [delete]
func (h *Handlers) ClearDatasetHandler(c *gin.Context) {
	if err := h.dashboard.ClearDataset(sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "cleared"})
}

// DescribeDatasetHandler returns statistics of the numeric columns
// @Summary      Describe dataset
// @Description  count, mean, std, min, quartiles and max of every numeric column
// @Tags         Dataset
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   dataset.ColumnStats
// @Failure      404  {object}  models.ErrorResponse  "No dataset uploaded"
// @Router       /api/dataset/describe [get]
func (h *Handlers) DescribeDatasetHandler(c *gin.Context) {
	stats, err := h.dashboard.Describe(sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	// c.JSON commits the 200 before encoding.
	body, err := json.Marshal(stats)
	if err != nil {
		h.fail(c, apperr.Wrap(err, apperr.CodeInternal, "failed to encode statistics"))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ChartHandler renders the bar chart
// @Summary      Bar chart
// @Description  Standalone HTML bar chart of y against x. x may be any column, y must be numeric. Empty values pick the defaults.
// @Tags         Dataset
// @Produce      html
// @Security     SessionCookie
// @Param        x    query     string  false  "x-axis column"
// @Param        y    query     string  false  "y-axis column (numeric)"
// @Success      200  {string}  string  "Chart page"
// @Failure      400  {object}  models.ErrorResponse  "Column not eligible or no numeric data"
// @Failure      404  {object}  models.ErrorResponse  "No dataset uploaded"
// @Router       /api/chart [get]
func (h *Handlers) ChartHandler(c *gin.Context) {
	view, err := h.dashboard.Chart(sessionID(c), c.Query("x"), c.Query("y"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Security-Policy", "sandbox allow-scripts")
	c.Data(http.StatusOK, "text/html; charset=utf-8", view.HTML)
}
