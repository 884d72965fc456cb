package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPostResponse_CopiesFieldsAndHidesObjectKey(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	post := &domain.Post{
		PostID:   9,
		BoardID:  2,
		AuthorID: 3,
		Title:    "Hello",
		Content:  "body",
		Attachments: []domain.Attachment{
			{AttachmentID: 4, PostID: 9, URL: "https://cdn.example.com/a.png", ObjectKey: "posts/3/a.png"},
		},
		Timestamps: domain.Timestamps{CreatedAt: created, UpdatedAt: created},
	}

	resp := dto.ToPostResponse(post)

	assert.Equal(t, int64(9), resp.PostID)
	assert.Equal(t, int64(2), resp.BoardID)
	assert.Equal(t, int64(3), resp.AuthorID)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, dto.AttachmentResponse{AttachmentID: 4, PostID: 9, URL: "https://cdn.example.com/a.png"}, resp.Attachments[0])

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, k := range []string{"id", "boardId", "authorId", "title", "content", "attachments", "createdAt", "updatedAt"} {
		assert.Contains(t, keys, k)
	}
	assert.NotContains(t, string(raw), "posts/3/a.png")
}

func TestToPostResponses_NeverNil(t *testing.T) {
	out := dto.ToPostResponses(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = dto.ToPostResponses([]domain.Post{{PostID: 1}})
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Attachments)

	raw, err := json.Marshal(dto.ListPostsResponse{Posts: dto.ToPostResponses(nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[]}`, string(raw))
}

func TestToBoardResponses(t *testing.T) {
	out := dto.ToBoardResponses([]domain.Board{{BoardID: 1, Name: "Notice"}, {BoardID: 2, Name: "Free"}})

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].BoardID)
	assert.Equal(t, "Free", out[1].Name)
	assert.NotNil(t, dto.ToBoardResponses(nil))
}
