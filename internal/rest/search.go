package rest

import (
	"net/http"
	"strconv"

	"github.com/dfryer1193/kvblog/api"
	"github.com/gin-gonic/gin"
)

func (a *Api) Search(c *gin.Context) {
	query := c.Query("q")

	posts, err := a.queries.Search(c.Request.Context(), query, visibility(c), a.language(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.SearchResult{Query: query, Count: len(posts), Posts: posts})
}

func (a *Api) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	posts, err := a.queries.Recent(c.Request.Context(), limit, visibility(c), a.language(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.PostList{Posts: posts, Count: len(posts)})
}
