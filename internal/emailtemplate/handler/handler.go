package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate/service"
	"github.com/emailbuilder/emailbuilder/pkg/logger"
	"github.com/emailbuilder/emailbuilder/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const (
	errLayout   = "Failed to load template"
	errSave     = "Failed to save template"
	errMissing  = "Missing required fields: title, content, and footer are required"
	errRender   = "Failed to generate template"
	errPreview  = "Failed to render preview"
	errBadInput = "Invalid request body"
)

const htmlContentType = "text/html; charset=utf-8"

// RegisterTemplateRoutes mounts the email template API on r.
func RegisterTemplateRoutes(r gin.IRouter, svc service.Service) {
	api := r.Group("/api")
	api.GET("/getEmailLayout", getLayout(svc))
	api.POST("/uploadEmailConfig", uploadConfig(svc))
	api.POST("/renderAndDownloadTemplate", renderAndDownload(svc))
	api.POST("/previewEmailTemplate", previewTemplate(svc))
}

func getLayout(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := svc.GetLayout(c.Request.Context())
		if err != nil {
			fail(c, http.StatusInternalServerError, errLayout, err)
			return
		}
		c.Data(http.StatusOK, htmlContentType, []byte(raw))
	}
}

func uploadConfig(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d emailtemplate.Draft
		if err := c.ShouldBindJSON(&d); err != nil {
			fail(c, http.StatusBadRequest, errBadInput, err)
			return
		}
		msg, err := svc.SaveDraft(c.Request.Context(), d)
		if err != nil {
			if emailtemplate.IsValidationError(err) {
				fail(c, http.StatusBadRequest, errMissing, err)
				return
			}
			fail(c, http.StatusInternalServerError, errSave, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
	}
}

func renderAndDownload(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d emailtemplate.Draft
		if err := c.ShouldBindJSON(&d); err != nil {
			fail(c, http.StatusBadRequest, errBadInput, err)
			return
		}
		out, err := svc.RenderAndDownload(c.Request.Context(), d)
		if err != nil {
			switch {
			case emailtemplate.IsValidationError(err):
				fail(c, http.StatusBadRequest, errMissing, err)
			case errors.Is(err, service.ErrResourceUnavailable):
				fail(c, http.StatusInternalServerError, errLayout, err)
			default:
				fail(c, http.StatusInternalServerError, errRender, err)
			}
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
		c.Data(http.StatusOK, htmlContentType, out.HTML)
	}
}

func previewTemplate(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d emailtemplate.Draft
		if err := c.ShouldBindJSON(&d); err != nil {
			fail(c, http.StatusBadRequest, errBadInput, err)
			return
		}
		html, err := svc.Preview(c.Request.Context(), d)
		if err != nil {
			fail(c, http.StatusInternalServerError, errPreview, err)
			return
		}
		c.Data(http.StatusOK, htmlContentType, []byte(html))
	}
}

// fail logs the cause and responds with a generic error payload.
func fail(c *gin.Context, status int, msg string, cause error) {
	rid := middleware.GetRequestID(c)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s request_id=%s: %s: %v", c.Request.Method, c.FullPath(), rid, msg, cause)
	} else {
		logger.Debugf("%s %s request_id=%s: %s: %v", c.Request.Method, c.FullPath(), rid, msg, cause)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
