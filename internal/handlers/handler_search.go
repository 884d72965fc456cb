package handlers

import (
	"net/http"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// searchPosts godoc
// @Summary Search posts
// @Description Matches indexed posts whose title contains the query or whose author is authorId. Results are cached.
// @Tags search
// @Produce json
// @Param title query string false "Title substring"
// @Param authorId query int false "Author ID"
// @Success 200 {object} dto.SearchPostsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Search cache unavailable"
// @Router /posts/search [get]
func (h *postHandler) searchPosts(c *gin.Context) {
	var params dto.SearchPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	posts, err := h.searchService.SearchPosts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to search posts")
		return
	}
	c.JSON(http.StatusOK, dto.SearchPostsResponse{Posts: dto.ToPostResponses(posts)})
}

// topSearches godoc
// @Summary Most requested searches
// @Tags search
// @Produce json
// @Success 200 {object} dto.TopSearchesResponse
// @Failure 503 {object} ErrorResponse "Search cache unavailable"
// @Router /posts/search/top [get]
func (h *postHandler) topSearches(c *gin.Context) {
	top, err := h.searchService.TopSearches(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to read top searches")
		return
	}
	if top == nil {
		top = []domain.SearchCount{}
	}
	c.JSON(http.StatusOK, dto.TopSearchesResponse{Searches: top})
}
