package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"datachat/apperr"
	"datachat/auth"
	"datachat/logger"
	"datachat/models"
	"datachat/service"
	"datachat/session"
	"datachat/web"

	"github.com/gin-gonic/gin"
)

// @title           Data Chat Dashboard API
// @version         1.0
// @description     Upload a spreadsheet, chart it and ask a business-analyst model about it. Export the latest answer as a PDF report.

// @contact.name   API Support

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        session

const module = "handlers"

type Handlers struct {
	dashboard      *service.Dashboard
	auth           *auth.Authenticator
	log            logger.Logger
	templates      *template.Template
	title          string
	storeName      string
	maxUploadBytes int64
}

type Options struct {
	Title       string
	StoreName   string
	MaxUploadMB int
}

func New(dashboard *service.Dashboard, authenticator *auth.Authenticator, log logger.Logger, opts Options) (*Handlers, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "Business Dashboard"
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 200
	}
	return &Handlers{
		dashboard:      dashboard,
		auth:           authenticator,
		log:            log,
		templates:      tmpl,
		title:          opts.Title,
		storeName:      opts.StoreName,
		maxUploadBytes: int64(opts.MaxUploadMB) << 20,
	}, nil
}

// Register mounts every route on r.
func (h *Handlers) Register(r *gin.Engine) {
	r.SetHTMLTemplate(h.templates)

	r.GET("/health", h.HealthHandler)
	r.GET("/login", h.LoginPageHandler)
	r.POST("/login", h.LoginHandler)

	private := r.Group("/")
	private.Use(h.auth.Middleware())
	{
		private.GET("/", h.DashboardHandler)
		private.POST("/logout", h.LogoutHandler)
		private.POST("/upload", h.UploadFormHandler)
		private.POST("/chat", h.ChatFormHandler)
		private.POST("/clear", h.ClearFormHandler)
	}

	api := r.Group("/api")
	api.Use(h.auth.Middleware())
	{
		api.GET("/dataset", h.GetDatasetHandler)
		api.POST("/dataset", h.UploadDatasetHandler)
		api.DELETE("/dataset", h.ClearDatasetHandler)
		api.GET("/dataset/describe", h.DescribeDatasetHandler)
		api.GET("/chart", h.ChartHandler)

		api.GET("/chat", h.HistoryHandler)
		api.POST("/chat", h.ChatHandler)
		api.DELETE("/chat", h.ClearHistoryHandler)

		api.GET("/report", h.ReportHandler)
		api.POST("/logout", h.LogoutHandler)
	}
}

func claims(c *gin.Context) *auth.Claims {
	cl, ok := auth.FromContext(c)
	if !ok {
		return &auth.Claims{}
	}
	return cl
}

func sessionID(c *gin.Context) string {
	return claims(c).SessionID
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON || auth.IsAPIRequest(c.Request)
}

// fail writes err as a JSON error body with the status of its code.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	details := map[string]interface{}{
		"path":   c.FullPath(),
		"status": status,
		"code":   apperr.Code(err),
		"error":  err,
	}
	if status >= http.StatusInternalServerError {
		h.log.Error(module, "request failed", details)
	} else {
		h.log.Debug(module, "request rejected", details)
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error(), Code: apperr.Code(err)})
}

// flash queues err as a banner for the next dashboard render.
func (h *Handlers) flash(c *gin.Context, err error) {
	if ferr := h.dashboard.FlashError(sessionID(c), err); ferr != nil {
		h.log.Error(module, "failed to queue banner", map[string]interface{}{"error": ferr})
	}
}

func (h *Handlers) flashMessage(c *gin.Context, level, message string) {
	if err := h.dashboard.Flash(sessionID(c), level, message); err != nil {
		h.log.Error(module, "failed to queue banner", map[string]interface{}{"error": err})
	}
}

func backToDashboard(c *gin.Context, anchor string) {
	c.Redirect(http.StatusSeeOther, "/"+anchor)
}

func toMessage(t session.Turn) models.Message {
	return models.Message{
		Role:      t.Role,
		Content:   t.Content,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func uploadTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
