package graph

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/inkstream/backend/internal/models"
	"github.com/anonto42/inkstream/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. The like fake enforces the same unique
// (post, author) constraint as the MongoDB index so toggle races behave the
// way they do against the real store.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[objID]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUserByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.LikeIDs == nil {
		post.LikeIDs = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[objID]; ok {
		clone := *p
		clone.LikeIDs = append([]primitive.ObjectID(nil), p.LikeIDs...)
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePostRepo) ListPosts(_ context.Context, before *time.Time, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if before != nil && !p.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, *p)
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) SetLikeRefs(_ context.Context, postID primitive.ObjectID, likeIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.LikeIDs = append([]primitive.ObjectID{}, likeIDs...)
	return nil
}

func (r *fakePostRepo) AddCommentRef(_ context.Context, postID, commentID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.CommentIDs = append(p.CommentIDs, commentID)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[primitive.ObjectID]*models.Like

	// staleReads makes GetLikeByPostAndAuthor report "not found" that many
	// times even when a like exists, simulating the window where two
	// concurrent toggles both observe no existing like.
	staleReads int
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[primitive.ObjectID]*models.Like)}
}

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Unique (post, author) index.
	for _, l := range r.likes {
		if l.PostID == like.PostID && l.AuthorID == like.AuthorID {
			return repositories.ErrDuplicate
		}
	}
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	clone := *like
	r.likes[like.ID] = &clone
	return nil
}

func (r *fakeLikeRepo) DeleteLikeByID(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.likes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.likes, id)
	return nil
}

func (r *fakeLikeRepo) GetLikeByPostAndAuthor(_ context.Context, postID, authorID primitive.ObjectID) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleReads > 0 {
		r.staleReads--
		return nil, repositories.ErrNotFound
	}
	for _, l := range r.likes {
		if l.PostID == postID && l.AuthorID == authorID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeLikeRepo) GetLikesByPostID(_ context.Context, postID primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Like
	for _, l := range r.likes {
		if l.PostID == postID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.likes)
}
