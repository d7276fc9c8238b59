package repositories

import (
	"context"
	"time"

	"github.com/anonto42/inkstream/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLikeByID(ctx context.Context, id primitive.ObjectID) error
	GetLikeByPostAndAuthor(ctx context.Context, postID, authorID primitive.ObjectID) (*models.Like, error)
	GetLikesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Like, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike inserts a new like. The unique (post_id, author_id) index
// rejects a second like for the same pair; that surfaces as ErrDuplicate so
// the toggle can resolve concurrent double-likes silently.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteLikeByID removes a like record entirely (no soft delete)
func (r *MongoLikeRepository) DeleteLikeByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLikeByPostAndAuthor retrieves the like for a (post, author) pair
func (r *MongoLikeRepository) GetLikeByPostAndAuthor(ctx context.Context, postID, authorID primitive.ObjectID) (*models.Like, error) {
	var like models.Like
	err := r.collection.FindOne(ctx, bson.M{"post_id": postID, "author_id": authorID}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

// GetLikesByPostID retrieves all likes for a specific post, oldest first
func (r *MongoLikeRepository) GetLikesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Like, error) {
	var likes []models.Like
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}
