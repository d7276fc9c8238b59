package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post stored in MongoDB.
//
// LikeIDs and CommentIDs are denormalized back-reference lists. They are
// derived views over the likes and comments collections: every write path
// recomputes them from the authoritative records instead of patching them
// incrementally, so they cannot drift out of sync with the source data.
type Post struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title      string               `json:"title" bson:"title"`
	Content    string               `json:"content" bson:"content"`
	AuthorID   primitive.ObjectID   `json:"author_id" bson:"author_id"`
	Tags       []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	LikeIDs    []primitive.ObjectID `json:"like_ids" bson:"like_ids"`
	CommentIDs []primitive.ObjectID `json:"comment_ids" bson:"comment_ids"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the input for the createPost mutation
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
}
