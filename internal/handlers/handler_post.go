package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/boardhub/board_backend/internal/core/domain"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// attachmentsField is the multipart field carrying post attachments.
const attachmentsField = "attachments"

type postHandler struct {
	postService   portssvc.PostSvcFacade
	searchService portssvc.SearchSvcFacade
}

func registerPostRoutes(rg *gin.RouterGroup, ps portssvc.PostSvcFacade, ss portssvc.SearchSvcFacade, authRequired gin.HandlerFunc) {
	h := &postHandler{postService: ps, searchService: ss}

	posts := rg.Group("/posts")
	{
		posts.GET("", h.listPosts)
		posts.GET("/search", h.searchPosts)
		posts.GET("/search/top", h.topSearches)
		posts.GET("/:id", h.getPost)
		posts.POST("", authRequired, h.createPost)
		posts.PUT("/:id", authRequired, h.updatePost)
		posts.DELETE("/:id", authRequired, h.deletePost)
	}
}

// createPost godoc
// @Summary Create a post
// @Description Creates a post on a board with up to 3 file attachments. Admin boards only accept admin authors.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param boardId formData int true "Board ID"
// @Param attachments formData file false "Attachments (max 3)"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin board"
// @Failure 404 {object} ErrorResponse "Board not found"
// @Failure 503 {object} ErrorResponse "Attachment storage not configured"
// @Security BearerAuth
// @Router /posts [post]
func (h *postHandler) createPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind create post request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	authorID, ok := requireUserID(c)
	if !ok {
		return
	}

	files, err := readAttachments(c)
	if err != nil {
		logger.Warn("Failed to read attachments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, files, authorID)
	if err != nil {
		respondWithError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// readAttachments loads the uploaded files into memory. Requests without a
// multipart body simply carry no attachments.
func readAttachments(c *gin.Context) ([]domain.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	headers := form.File[attachmentsField]
	if len(headers) > domain.MaxAttachmentsPerPost {
		return nil, fmt.Errorf("at most %d attachments are allowed", domain.MaxAttachmentsPerPost)
	}

	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFormFile(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		files = append(files, domain.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		})
	}
	return files, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// getPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *postHandler) getPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// listPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param boardId query int false "Only posts of this board"
// @Success 200 {object} dto.ListPostsResponse
// @Failure 400 {object} ErrorResponse
// @Router /posts [get]
func (h *postHandler) listPosts(c *gin.Context) {
	var params dto.ListPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	posts, err := h.postService.ListPosts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list posts")
		return
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Posts: dto.ToPostResponses(posts)})
}

// updatePost godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *postHandler) updatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// deletePost godoc
// @Summary Delete own post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *postHandler) deletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), postID, actorID); err != nil {
		respondWithError(c, err, "Failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
