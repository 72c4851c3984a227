package http

import (
	"net/http"
	"os"

	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v75/github"
)

type WebhookHandler struct {
	webhookSecret []byte
	githubSync    *application.GitHubSyncService
}

func NewWebhookHandler(githubSync *application.GitHubSyncService) *WebhookHandler {
	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		panic("WEBHOOK_SECRET is not set")
	}

	return &WebhookHandler{
		webhookSecret: []byte(secret),
		githubSync:    githubSync,
	}
}

func (h *WebhookHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhook/git", h.HandleGitWebhook)
}

func (h *WebhookHandler) HandleGitWebhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, h.webhookSecret)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid event")
		return
	}

	switch evt := event.(type) {
	case *github.PushEvent:
		err = h.githubSync.HandlePushEvent(evt)
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error handling event")
		return
	}

	c.Status(http.StatusNoContent)
}
