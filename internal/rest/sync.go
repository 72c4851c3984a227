package rest

import (
	"net/http"

	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/gin-gonic/gin"
)

func (a *Api) Sync(c *gin.Context) {
	payload := &application.SyncPayload{}
	if err := c.ShouldBindJSON(payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.syncs.Sync(c.Request.Context(), *payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": payload.Key, "synced": true})
}
