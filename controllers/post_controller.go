// File: /controllers/post_controller.go
package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"livewall-api/middleware"
	"livewall-api/models"
	"livewall-api/services"
	"livewall-api/utils"
)

// Uploads above this size are rejected before they reach the media store.
const maxImageBytes = 10 << 20

type PostController struct {
	moderation *services.ModerationService
	feed       *services.FeedService
	feedLoc    *time.Location
}

func NewPostController(moderation *services.ModerationService, feed *services.FeedService, feedLoc *time.Location) *PostController {
	if feedLoc == nil {
		feedLoc = time.UTC
	}
	return &PostController{
		moderation: moderation,
		feed:       feed,
		feedLoc:    feedLoc,
	}
}

type CreateTextPostRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Content string `json:"content"`
	Caption string `json:"caption"`
}

// CreatePost accepts either a JSON body (text posts) or a multipart form
// with an "image" file (image posts). The post kind decides which fields
// are required; validation lives in the model constructors.
func (pc *PostController) CreatePost(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		pc.createFromForm(c)
		return
	}

	var req CreateTextPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Kind {
	case models.KindText:
		post, err := pc.moderation.SubmitText(c.Request.Context(), req.Content)
		if err != nil {
			utils.SendServiceError(c, err)
			return
		}
		utils.SendCreated(c, post)
	case models.KindImage:
		utils.SendError(c, http.StatusBadRequest, "Image posts must be submitted as multipart/form-data")
	default:
		utils.SendError(c, http.StatusBadRequest, "Invalid post kind")
	}
}

func (pc *PostController) createFromForm(c *gin.Context) {
	kind := c.PostForm("kind")

	switch kind {
	case models.KindText:
		post, err := pc.moderation.SubmitText(c.Request.Context(), c.PostForm("content"))
		if err != nil {
			utils.SendServiceError(c, err)
			return
		}
		utils.SendCreated(c, post)

	case models.KindImage:
		fileHeader, err := c.FormFile("image")
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "Image file is required")
			return
		}
		if fileHeader.Size > maxImageBytes {
			utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Image exceeds the %d MB limit", maxImageBytes>>20))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "Could not read image file")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "Could not read image file")
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		post, err := pc.moderation.SubmitImage(c.Request.Context(), data, contentType, c.PostForm("caption"))
		if err != nil {
			utils.SendServiceError(c, err)
			return
		}
		utils.SendCreated(c, post)

	default:
		utils.SendError(c, http.StatusBadRequest, "Invalid post kind")
	}
}

// GetPosts returns the feed for one calendar day (?date=YYYY-MM-DD,
// default today). Hidden posts show up only for moderation callers.
func (pc *PostController) GetPosts(c *gin.Context) {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, pc.feedLoc)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	posts, err := pc.feed.GetFeed(c.Request.Context(), date, middleware.CurrentRole(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (pc *PostController) LikePost(c *gin.Context) {
	post, err := pc.moderation.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetAllPostsAdmin returns every post ever created, hidden included, for
// the moderation panel.
func (pc *PostController) GetAllPostsAdmin(c *gin.Context) {
	posts, err := pc.feed.GetAllAdmin(c.Request.Context(), middleware.CurrentRole(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (pc *PostController) ToggleHidePost(c *gin.Context) {
	post, err := pc.moderation.ToggleHide(c.Request.Context(), c.Param("id"), middleware.CurrentRole(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	message := "Post has been made visible"
	if post.Hidden {
		message = "Post has been hidden"
	}
	utils.SendSuccess(c, message, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	err := pc.moderation.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentRole(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Post deleted successfully", nil)
}
