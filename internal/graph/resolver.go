package graph

import (
	"context"
	"errors"

	"github.com/anonto42/inkstream/backend/internal/auth"
	"github.com/anonto42/inkstream/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User-facing errors delivered through the GraphQL error channel.
var (
	errAuthRequired    = errors.New("Authentication required")
	errPostNotFound    = errors.New("Post not found")
	errUserExists      = errors.New("User already exists")
	errUserNotFound    = errors.New("User not found")
	errInvalidPassword = errors.New("Invalid password")
)

// Resolver implements every query and mutation of the schema on top of the
// repository interfaces.
type Resolver struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	tokens   *auth.TokenIssuer
	validate *validator.Validate
}

// NewResolver creates a Resolver wired to the given repositories and token
// issuer.
func NewResolver(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	tokens *auth.TokenIssuer,
) *Resolver {
	return &Resolver{
		users:    users,
		posts:    posts,
		comments: comments,
		likes:    likes,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// viewerObjectID resolves the authenticated caller from the context into an
// ObjectID. Returns errAuthRequired when the request carries no identity.
func (r *Resolver) viewerObjectID(ctx context.Context) (primitive.ObjectID, error) {
	viewerID, ok := auth.ViewerID(ctx)
	if !ok {
		return primitive.NilObjectID, errAuthRequired
	}
	objID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return primitive.NilObjectID, errAuthRequired
	}
	return objID, nil
}

// syncLikeRefs rewrites the post's denormalized like id list from the likes
// collection. The list is a derived view: recomputing it on every toggle
// keeps it equal to the authoritative like set even after lost races, so it
// can never drift the way an incrementally patched counter would.
func (r *Resolver) syncLikeRefs(ctx context.Context, postID primitive.ObjectID) error {
	likes, err := r.likes.GetLikesByPostID(ctx, postID)
	if err != nil {
		return err
	}
	likeIDs := make([]primitive.ObjectID, 0, len(likes))
	for _, like := range likes {
		likeIDs = append(likeIDs, like.ID)
	}
	return r.posts.SetLikeRefs(ctx, postID, likeIDs)
}
