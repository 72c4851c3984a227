package rest

import (
	"net/http"

	"github.com/dfryer1193/kvblog/api"
	"github.com/gin-gonic/gin"
)

func (a *Api) ListCategories(c *gin.Context) {
	categories, err := a.queries.ListCategories(c.Request.Context(), a.language(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.CategoryList{Categories: categories})
}

func (a *Api) GetCategoryInfo(c *gin.Context) {
	info, err := a.queries.GetCategoryInfo(c.Request.Context(), c.Param("language"), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (a *Api) ListCategoryPosts(c *gin.Context) {
	posts, err := a.queries.ListCategory(c.Request.Context(), c.Param("language"), c.Param("category"), visibility(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.PostList{Posts: posts, Count: len(posts)})
}
