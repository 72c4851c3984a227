package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/kvblog/blog/application"
	"github.com/dfryer1193/kvblog/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Api wires the query and sync services to versioned route groups. Language
// and status defaults are applied here; the services always receive them
// explicitly.
type Api struct {
	queries         *application.QueryService
	syncs           *application.SyncService
	markdown        application.MarkdownRenderer
	defaultLanguage string
}

func NewApi(router *gin.Engine, queries *application.QueryService, syncs *application.SyncService, markdown application.MarkdownRenderer, defaultLanguage string) *Api {
	a := &Api{
		queries:         queries,
		syncs:           syncs,
		markdown:        markdown,
		defaultLanguage: defaultLanguage,
	}

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/:language/:category/:slug", a.GetPost)
		postsV1.GET("/:language/:category/:slug/raw", a.GetRawContent)
		postsV1.GET("/:language/:category/:slug/meta", a.GetMetadata)
		postsV1.GET("/:language/:category/:slug/html", a.GetRenderedPost)
	}

	categoriesV1 := router.Group("categories/v1")
	{
		categoriesV1.GET("/", a.ListCategories)
		categoriesV1.GET("/:language/:category", a.GetCategoryInfo)
		categoriesV1.GET("/:language/:category/posts", a.ListCategoryPosts)
	}

	searchV1 := router.Group("search/v1")
	{
		searchV1.GET("/", a.Search)
	}

	recentV1 := router.Group("recent/v1")
	{
		recentV1.GET("/", a.Recent)
	}

	syncV1 := router.Group("sync/v1")
	{
		syncV1.POST("/", a.Sync)
	}

	return a
}

// visibility reads the status query parameter; reads default to published.
func visibility(c *gin.Context) domain.Visibility {
	return domain.VisibilityFromStatus(c.DefaultQuery("status", string(domain.Published)))
}

func (a *Api) language(c *gin.Context) string {
	lang := c.Query("lang")
	if lang == "" {
		return a.defaultLanguage
	}
	return lang
}

// respondError translates the core error taxonomy to status codes. The
// services themselves never see HTTP.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidContent), errors.Is(err, domain.ErrMalformedQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
