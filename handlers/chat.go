package handlers

import (
	"fmt"
	"net/http"

	"datachat/apperr"
	"datachat/models"
	"datachat/report"
	"datachat/validation"

	"github.com/gin-gonic/gin"
)

// ChatHandler asks the model about the uploaded data
// @Summary      Ask the analyst
// @Description  Appends the message to the transcript, sends it with the dataset summary to the model and appends the answer.
// @Description  Without an API key nothing is sent and MISSING_API_KEY is returned.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request  body      models.ChatRequest   true  "Chat message"
// @Success      200      {object}  models.ChatResponse
// @Failure      400      {object}  models.ErrorResponse  "Empty or oversized message"
// @Failure      502      {object}  models.ErrorResponse  "APP_ERROR: the model call failed"
// @Failure      503      {object}  models.ErrorResponse  "MISSING_API_KEY"
// @Router       /api/chat [post]
func (h *Handlers) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.InvalidInput("Invalid request"))
		return
	}
	if err := validation.Struct(req); err != nil {
		h.fail(c, err)
		return
	}

	turn, err := h.dashboard.Chat(c.Request.Context(), sessionID(c), req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ChatResponse{Response: turn.Content, Message: toMessage(turn)})
}

// HistoryHandler returns the transcript
// @Summary      Chat transcript
// @Tags         Chat
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  models.HistoryResponse
// @Router       /api/chat [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	turns, err := h.dashboard.History(sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := models.HistoryResponse{Messages: make([]models.Message, 0, len(turns))}
	for _, t := range turns {
		resp.Messages = append(resp.Messages, toMessage(t))
	}
	c.JSON(http.StatusOK, resp)
}

// ClearHistoryHandler empties the transcript
// @Summary      Clear chat history
// @Tags         Chat
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  models.StatusResponse
// @Router       /api/chat [delete]
func (h *Handlers) ClearHistoryHandler(c *gin.Context) {
	if err := h.dashboard.ClearHistory(sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "cleared"})
}

// ReportHandler downloads the latest answer as PDF
// @Summary      Download PDF report
// @Description  Renders the latest assistant answer under a "Business Report" heading
// @Tags         Chat
// @Produce      application/pdf
// @Security     SessionCookie
// @Success      200  {file}    file
// @Failure      404  {object}  models.ErrorResponse  "No answer yet"
// @Failure      502  {object}  models.ErrorResponse  "APP_ERROR: rendering failed"
// @Router       /api/report [get]
func (h *Handlers) ReportHandler(c *gin.Context) {
	pdf, err := h.dashboard.Report(sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
