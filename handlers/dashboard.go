package handlers

import (
	"fmt"
	"net/http"

	"datachat/apperr"
	"datachat/session"
	"datachat/web"

	"github.com/gin-gonic/gin"
)

// DashboardHandler renders the page. The x and y query parameters pick the chart columns.
func (h *Handlers) DashboardHandler(c *gin.Context) {
	cl := claims(c)
	name := cl.Name
	if name == "" {
		name = cl.Username()
	}

	page, err := h.dashboard.Page(cl.SessionID, name, c.Query("x"), c.Query("y"))
	if err != nil {
		h.log.Error(module, "failed to build dashboard", map[string]interface{}{"session_id": cl.SessionID, "error": err})
		c.String(apperr.Status(err), err.Error())
		return
	}

	c.HTML(http.StatusOK, web.DashboardTemplate, gin.H{
		"Title":      h.title,
		"Page":       page,
		"MissingKey": apperr.MissingAPIKey().Error(),
	})
}

// UploadFormHandler handles the upload form and redirects back to the dashboard.
func (h *Handlers) UploadFormHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if uploadTooLarge(err) {
			h.flash(c, apperr.InvalidInput(fmt.Sprintf("File is larger than %dMB", h.maxUploadBytes>>20)))
		} else {
			h.flash(c, apperr.InvalidInput("No file selected"))
		}
		backToDashboard(c, "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.flash(c, apperr.UploadFailed(err))
		backToDashboard(c, "")
		return
	}
	defer file.Close()

	view, err := h.dashboard.Upload(c.Request.Context(), sessionID(c), fileHeader.Filename, file)
	if err != nil {
		h.flash(c, err)
		backToDashboard(c, "")
		return
	}
	h.flashMessage(c, session.BannerSuccess, "✅ Loaded "+view.Name)
	backToDashboard(c, "")
}

// ChatFormHandler sends the chat form message and redirects back to the transcript.
func (h *Handlers) ChatFormHandler(c *gin.Context) {
	if _, err := h.dashboard.Chat(c.Request.Context(), sessionID(c), c.PostForm("message")); err != nil {
		h.flash(c, err)
	}
	backToDashboard(c, "#chat")
}

// ClearFormHandler empties the transcript.
func (h *Handlers) ClearFormHandler(c *gin.Context) {
	if err := h.dashboard.ClearHistory(sessionID(c)); err != nil {
		h.flash(c, err)
	}
	backToDashboard(c, "")
}
