package graph

import (
	"errors"

	"github.com/anonto42/inkstream/backend/internal/models"
	"github.com/anonto42/inkstream/backend/internal/repositories"
	"github.com/graphql-go/graphql"
	"golang.org/x/crypto/bcrypt"
)

// resolveCreateUser handles the createUser mutation: registers an account
// and returns an AuthPayload with a fresh token.
func (r *Resolver) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	req := models.RegisterRequest{
		Username: argString(p, "username"),
		Email:    argString(p, "email"),
		Password: argString(p, "password"),
	}
	if err := r.validate.Struct(req); err != nil {
		return nil, err
	}

	// Reject before hashing when the username or email is already taken.
	if _, err := r.users.GetUserByUsernameOrEmail(p.Context, req.Username, req.Email); err == nil {
		return nil, errUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := r.users.CreateUser(p.Context, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errUserExists
		}
		return nil, err
	}

	token, err := r.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthPayload{Token: token, User: user}, nil
}

// resolveLogin handles the login mutation
func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	req := models.LoginRequest{
		Username: argString(p, "username"),
		Password: argString(p, "password"),
	}
	if err := r.validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := r.users.GetUserByUsername(p.Context, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidPassword
	}

	token, err := r.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &models.AuthPayload{Token: token, User: user}, nil
}

// resolveCreatePost handles the createPost mutation
func (r *Resolver) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	authorID, err := r.viewerObjectID(p.Context)
	if err != nil {
		return nil, err
	}

	req := models.CreatePostRequest{
		Title:   argString(p, "title"),
		Content: argString(p, "content"),
		Tags:    argStringList(p, "tags"),
	}
	if err := r.validate.Struct(req); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		AuthorID: authorID,
	}
	if err := r.posts.CreatePost(p.Context, post); err != nil {
		return nil, err
	}
	return post, nil
}

// resolveCreateComment handles the createComment mutation
func (r *Resolver) resolveCreateComment(p graphql.ResolveParams) (interface{}, error) {
	authorID, err := r.viewerObjectID(p.Context)
	if err != nil {
		return nil, err
	}

	postID := argString(p, "postId")
	post, err := r.posts.GetPostByID(p.Context, postID)
	if err != nil {
		return nil, errPostNotFound
	}

	req := models.CreateCommentRequest{Content: argString(p, "content")}
	if err := r.validate.Struct(req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := r.comments.CreateComment(p.Context, comment); err != nil {
		return nil, err
	}

	if err := r.posts.AddCommentRef(p.Context, post.ID, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

// resolveToggleLike flips the caller's like state on a post.
//
// The nullable result is the signal: a Like record means "now liked", null
// means "now unliked". Two concurrent toggles from the same user that both
// observe "no existing like" race on the insert; the unique (post, author)
// index fails the loser, which is then resolved silently into "already
// liked" by returning the winner's record. After either branch the post's
// like id list is recomputed from the likes collection.
func (r *Resolver) resolveToggleLike(p graphql.ResolveParams) (interface{}, error) {
	authorID, err := r.viewerObjectID(p.Context)
	if err != nil {
		return nil, err
	}

	post, err := r.posts.GetPostByID(p.Context, argString(p, "postId"))
	if err != nil {
		return nil, errPostNotFound
	}

	existing, err := r.likes.GetLikeByPostAndAuthor(p.Context, post.ID, authorID)
	if err == nil {
		// Unlike: delete the record and drop its back-reference. A
		// concurrent unlike may have deleted it first; that is the same
		// outcome, so the miss is not an error.
		if err := r.likes.DeleteLikeByID(p.Context, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		if err := r.syncLikeRefs(p.Context, post.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	like := &models.Like{PostID: post.ID, AuthorID: authorID}
	if err := r.likes.CreateLike(p.Context, like); err != nil {
		if !errors.Is(err, repositories.ErrDuplicate) {
			return nil, err
		}
		// Lost the insert race: the post is already liked. Hand back the
		// winner's record instead of an error.
		winner, err := r.likes.GetLikeByPostAndAuthor(p.Context, post.ID, authorID)
		if err != nil {
			return nil, err
		}
		like = winner
	}

	if err := r.syncLikeRefs(p.Context, post.ID); err != nil {
		return nil, err
	}
	return like, nil
}

func argString(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func argStringList(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
