package graph

import (
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/inkstream/backend/internal/models"
	"github.com/anonto42/inkstream/backend/internal/repositories"
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultFeedLimit = 10

// resolvePosts handles the posts query. The cursor is an RFC 3339 timestamp
// acting as an exclusive upper bound on createdAt, which pairs with the
// newest-first sort to page backwards through the feed.
func (r *Resolver) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	limit := int64(defaultFeedLimit)
	if v, ok := p.Args["limit"].(int); ok && v > 0 {
		limit = int64(v)
	}

	var before *time.Time
	if s, ok := p.Args["cursor"].(string); ok && s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
		before = &t
	}

	posts, err := r.posts.ListPosts(p.Context, before, limit)
	if err != nil {
		return nil, err
	}
	return postPointers(posts), nil
}

// resolvePost handles the post query. A missing post resolves to null, the
// schema marks the result nullable.
func (r *Resolver) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	post, err := r.posts.GetPostByID(p.Context, argString(p, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// resolveComments handles the comments query
func (r *Resolver) resolveComments(p graphql.ResolveParams) (interface{}, error) {
	postID, err := primitive.ObjectIDFromHex(argString(p, "postId"))
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}
	comments, err := r.comments.GetCommentsByPostID(p.Context, postID)
	if err != nil {
		return nil, err
	}
	return commentPointers(comments), nil
}

// resolveLikes handles the likes query
func (r *Resolver) resolveLikes(p graphql.ResolveParams) (interface{}, error) {
	postID, err := primitive.ObjectIDFromHex(argString(p, "postId"))
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}
	likes, err := r.likes.GetLikesByPostID(p.Context, postID)
	if err != nil {
		return nil, err
	}
	return likePointers(likes), nil
}

func postPointers(posts []models.Post) []*models.Post {
	out := make([]*models.Post, len(posts))
	for i := range posts {
		out[i] = &posts[i]
	}
	return out
}

func commentPointers(comments []models.Comment) []*models.Comment {
	out := make([]*models.Comment, len(comments))
	for i := range comments {
		out[i] = &comments[i]
	}
	return out
}

func likePointers(likes []models.Like) []*models.Like {
	out := make([]*models.Like, len(likes))
	for i := range likes {
		out[i] = &likes[i]
	}
	return out
}
