package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-client/internal/api"
	"go-blog-client/internal/apitest"
	"go-blog-client/internal/model"
	"go-blog-client/internal/session"
)

func loggedInExecutor(t *testing.T, backend *apitest.Backend, username, password string) *api.Executor {
	t.Helper()

	store := session.NewStore(session.NewMemoryKeystore())
	exec := api.NewExecutor(backend.URL(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := exec.Login(context.Background(), username, password)
	require.NoError(t, err)

	return exec
}

func TestPostService_CreateGetUpdateDelete(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	ctx := context.Background()
	exec := loggedInExecutor(t, backend, "alice", "password1")
	posts := NewPostService(exec)

	cat := backend.SeedCategory("go", "all things go")

	created, err := posts.Create(ctx, model.PostRequest{
		Title:       "hello world",
		Content:     "first post",
		CategoryIDs: []int64{cat.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, created.Status, "status defaults to draft")
	assert.Equal(t, "alice", created.Username)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "go", created.Categories[0].Name)

	got, err := posts.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Title)

	updated, err := posts.Update(ctx, created.ID, model.PostRequest{
		Title:   "hello again",
		Content: "edited",
		Status:  model.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, updated.Status)

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "hello again", listed[0].Title)

	require.NoError(t, posts.Delete(ctx, created.ID))

	listed, err = posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestPostService_ListMineIncludesDrafts(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	ctx := context.Background()
	exec := loggedInExecutor(t, backend, "alice", "password1")
	posts := NewPostService(exec)

	_, err := posts.Create(ctx, model.PostRequest{Title: "draft", Content: "wip"})
	require.NoError(t, err)
	backend.SeedPost("root", "published by someone else", "body")

	mine, err := posts.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "draft", mine[0].Title)

	all, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "published by someone else", all[0].Title)
}

func TestPostService_TransparentRefreshOnExpiry(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	ctx := context.Background()
	exec := loggedInExecutor(t, backend, "alice", "password1")
	posts := NewPostService(exec)

	// The next call to the list route is rejected once; the executor
	// must refresh and retry without the caller noticing.
	backend.FailAuthTimes("/api/posts", 1)

	listed, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 1, backend.RefreshCalls())
	assert.True(t, exec.Session().IsAuthenticated())
}
