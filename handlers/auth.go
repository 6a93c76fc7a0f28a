package handlers

import (
	"net/http"
	"time"

	"datachat/apperr"
	"datachat/models"
	"datachat/validation"
	"datachat/web"

	"github.com/gin-gonic/gin"
)

// LoginPageHandler shows the login form, or the dashboard when the cookie is still valid.
func (h *Handlers) LoginPageHandler(c *gin.Context) {
	if _, err := h.auth.Verify(h.auth.Token(c.Request)); err == nil {
		backToDashboard(c, "")
		return
	}
	h.renderLogin(c, http.StatusOK, "", "")
}

func (h *Handlers) renderLogin(c *gin.Context, status int, username, message string) {
	c.HTML(status, web.LoginTemplate, gin.H{
		"Title":    h.title,
		"Username": username,
		"Error":    message,
	})
}

// LoginHandler checks the credentials and sets the session cookie
// @Summary      Log in
// @Description  Checks username and password against the credential file, starts a fresh session and sets the session cookie
// @Tags         Auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request  body      models.LoginRequest   true  "Credentials"
// @Success      200      {object}  models.LoginResponse  "Logged in (JSON requests)"
// @Success      303      {string}  string                "Redirect to the dashboard (form posts)"
// @Failure      400      {object}  models.ErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Router       /login [post]
func (h *Handlers) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	err := c.ShouldBind(&req)
	if err == nil {
		err = validation.Struct(req)
	}
	if err != nil {
		err = apperr.InvalidInput("Please enter your username and password")
		if wantsJSON(c) {
			h.fail(c, err)
			return
		}
		h.renderLogin(c, http.StatusBadRequest, req.Username, err.Error())
		return
	}

	token, cl, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.log.Warn(module, "login failed", map[string]interface{}{"username": req.Username, "ip": c.ClientIP()})
		if wantsJSON(c) {
			h.fail(c, err)
			return
		}
		h.renderLogin(c, apperr.Status(err), req.Username, err.Error())
		return
	}

	if err := h.dashboard.Start(cl.SessionID, cl.Username()); err != nil {
		if wantsJSON(c) {
			h.fail(c, err)
			return
		}
		h.renderLogin(c, apperr.Status(err), req.Username, err.Error())
		return
	}

	http.SetCookie(c.Writer, h.auth.Cookie(token))
	h.log.Info(module, "login", map[string]interface{}{"username": cl.Username(), "session_id": cl.SessionID})

	if wantsJSON(c) {
		c.JSON(http.StatusOK, models.LoginResponse{
			Username:  cl.Username(),
			Name:      cl.Name,
			ExpiresAt: cl.ExpiresAt.Time.Format(time.RFC3339),
		})
		return
	}
	backToDashboard(c, "")
}

// LogoutHandler ends the session
// @Summary      Log out
// @Description  Deletes the session state and clears the session cookie
// @Tags         Auth
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  models.StatusResponse
// @Router       /api/logout [post]
func (h *Handlers) LogoutHandler(c *gin.Context) {
	cl := claims(c)
	if err := h.dashboard.End(cl.SessionID); err != nil {
		h.log.Error(module, "logout failed", map[string]interface{}{"session_id": cl.SessionID, "error": err})
	}
	http.SetCookie(c.Writer, h.auth.ClearCookie())
	h.log.Info(module, "logout", map[string]interface{}{"username": cl.Username(), "session_id": cl.SessionID})

	if wantsJSON(c) {
		c.JSON(http.StatusOK, models.StatusResponse{Status: "logged_out"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}
