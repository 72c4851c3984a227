package rest

import (
	"net/http"

	"github.com/dfryer1193/kvblog/api"
	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/gin-gonic/gin"
)

func (a *Api) GetPost(c *gin.Context) {
	post, err := a.queries.GetPost(c.Request.Context(), c.Param("language"), c.Param("category"), c.Param("slug"), visibility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (a *Api) GetMetadata(c *gin.Context) {
	meta, err := a.queries.GetMetadata(c.Request.Context(), c.Param("language"), c.Param("category"), c.Param("slug"), visibility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

func (a *Api) GetRawContent(c *gin.Context) {
	content, err := a.queries.GetRawContent(c.Request.Context(), c.Param("language"), c.Param("category"), c.Param("slug"), visibility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, content)
}

func (a *Api) GetRenderedPost(c *gin.Context) {
	post, err := a.queries.GetPost(c.Request.Context(), c.Param("language"), c.Param("category"), c.Param("slug"), visibility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	html, err := a.markdown.Render(post.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	excerpt := post.Metadata.Excerpt
	if excerpt == "" {
		excerpt = application.ExtractExcerpt(post.Content)
	}

	c.JSON(http.StatusOK, api.RenderedPost{
		Slug:    post.Slug,
		Title:   post.Metadata.Title,
		Excerpt: excerpt,
		HTML:    string(html),
	})
}
