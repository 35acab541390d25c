package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-client/internal/apitest"
)

func TestCommentService_Lifecycle(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	ctx := context.Background()
	exec := loggedInExecutor(t, backend, "alice", "password1")
	comments := NewCommentService(exec)

	post := backend.SeedPost("root", "a post", "with a body")

	created, err := comments.Create(ctx, post.ID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, "nice post", created.Comment)
	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, post.ID, created.PostID)

	updated, err := comments.Update(ctx, post.ID, created.ID, "edited comment")
	require.NoError(t, err)
	assert.Equal(t, "edited comment", updated.Comment)

	listed, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "edited comment", listed[0].Comment)

	require.NoError(t, comments.Delete(ctx, post.ID, created.ID))

	listed, err = comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommentService_MissingPost(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	exec := loggedInExecutor(t, backend, "alice", "password1")
	comments := NewCommentService(exec)

	_, err := comments.Create(context.Background(), 9999, "into the void")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Post not found")
}
