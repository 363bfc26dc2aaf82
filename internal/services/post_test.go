package services

import (
	"context"
	"testing"

	"github.com/skillloop/skillloop-backend/internal/types"
)

func TestToggleLike_FlipsAndKeepsCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustCreateUser(t)
	liker := env.mustCreateUser(t)

	post, err := env.posts.Create(ctx, author.ID, PostInput{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	liked, err := env.posts.ToggleLike(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !liked {
		t.Fatalf("expected liked=true")
	}
	reloaded, err := env.posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LikeCount != 1 {
		t.Fatalf("expected like_count=1 got %d", reloaded.LikeCount)
	}

	liked, err = env.posts.ToggleLike(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if liked {
		t.Fatalf("expected liked=false")
	}
	reloaded, err = env.posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LikeCount != 0 {
		t.Fatalf("expected like_count=0 got %d", reloaded.LikeCount)
	}
}

func TestToggleLike_NotifiesAuthorOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustCreateUser(t)
	liker := env.mustCreateUser(t)

	post, err := env.posts.Create(ctx, author.ID, PostInput{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := env.posts.ToggleLike(ctx, post.ID, liker.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	page, err := env.notification.ListForUser(ctx, author.ID, types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(page.Content) != 1 {
		t.Fatalf("expected 1 notification got %d", len(page.Content))
	}
	if page.Content[0].Type != types.NotificationLike {
		t.Fatalf("expected LIKE got %s", page.Content[0].Type)
	}
}

func TestToggleLike_SelfLikeDoesNotNotify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustCreateUser(t)

	post, err := env.posts.Create(ctx, author.ID, PostInput{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := env.posts.ToggleLike(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("self like: %v", err)
	}
	count, err := env.notification.UnreadCount(ctx, author.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("self like produced %d notifications", count)
	}
}

func TestCommentCreate_BumpsCountAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustCreateUser(t)
	commenter := env.mustCreateUser(t)

	post, err := env.posts.Create(ctx, author.ID, PostInput{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := env.comments.Create(ctx, post.ID, commenter.ID, CommentInput{Content: "nice"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	reloaded, err := env.posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CommentCount != 1 {
		t.Fatalf("expected comment_count=1 got %d", reloaded.CommentCount)
	}
	page, err := env.notification.ListForUser(ctx, author.ID, types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Type != types.NotificationComment {
		t.Fatalf("expected one COMMENT notification")
	}

	if err := env.comments.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	reloaded, err = env.posts.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CommentCount != 0 {
		t.Fatalf("expected comment_count=0 got %d", reloaded.CommentCount)
	}
}

func TestPostDelete_RemovesCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustCreateUser(t)
	other := env.mustCreateUser(t)

	post, err := env.posts.Create(ctx, author.ID, PostInput{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := env.comments.Create(ctx, post.ID, other.ID, CommentInput{Content: "hi"}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := env.posts.ToggleLike(ctx, post.ID, other.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := env.posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	comments, err := env.comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("orphaned comments: %d", len(comments))
	}
	liked, err := env.posts.HasUserLiked(ctx, post.ID, other.ID)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if liked {
		t.Fatalf("orphaned like row")
	}
}
