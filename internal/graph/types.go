package graph

import (
	"github.com/anonto42/inkstream/backend/internal/models"
	"github.com/graphql-go/graphql"
)

// schemaTypes holds the GraphQL object types. Post, Comment and Like refer
// to each other, so the circular fields are attached with AddFieldConfig
// after every object exists.
type schemaTypes struct {
	user        *graphql.Object
	post        *graphql.Object
	comment     *graphql.Object
	like        *graphql.Object
	authPayload *graphql.Object
}

func newSchemaTypes(r *Resolver) *schemaTypes {
	ts := &schemaTypes{}

	ts.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).ID.Hex(), nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Username, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Email, nil
				},
			},
		},
	})

	ts.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).ID.Hex(), nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).Title, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).Content, nil
				},
			},
			"tags": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).Tags, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Post).CreatedAt, nil
				},
			},
		},
	})

	ts.comment = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Comment).ID.Hex(), nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Comment).Content, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Comment).CreatedAt, nil
				},
			},
		},
	})

	ts.like = graphql.NewObject(graphql.ObjectConfig{
		Name: "Like",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Like).ID.Hex(), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Like).CreatedAt, nil
				},
			},
		},
	})

	ts.authPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.AuthPayload).Token, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(ts.user),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.AuthPayload).User, nil
				},
			},
		},
	})

	ts.post.AddFieldConfig("author", &graphql.Field{
		Type: graphql.NewNonNull(ts.user),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.users.GetUserByID(p.Context, p.Source.(*models.Post).AuthorID.Hex())
		},
	})
	// Likes and comments resolve with a query over their own collections,
	// not from the post's back-reference arrays. The collections are the
	// source of truth; the arrays exist for cheap counts.
	ts.post.AddFieldConfig("likes", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(ts.like))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			likes, err := r.likes.GetLikesByPostID(p.Context, p.Source.(*models.Post).ID)
			if err != nil {
				return nil, err
			}
			return likePointers(likes), nil
		},
	})
	ts.post.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(ts.comment))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			comments, err := r.comments.GetCommentsByPostID(p.Context, p.Source.(*models.Post).ID)
			if err != nil {
				return nil, err
			}
			return commentPointers(comments), nil
		},
	})

	ts.comment.AddFieldConfig("author", &graphql.Field{
		Type: graphql.NewNonNull(ts.user),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.users.GetUserByID(p.Context, p.Source.(*models.Comment).AuthorID.Hex())
		},
	})
	ts.comment.AddFieldConfig("post", &graphql.Field{
		Type: graphql.NewNonNull(ts.post),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.posts.GetPostByID(p.Context, p.Source.(*models.Comment).PostID.Hex())
		},
	})

	ts.like.AddFieldConfig("author", &graphql.Field{
		Type: graphql.NewNonNull(ts.user),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.users.GetUserByID(p.Context, p.Source.(*models.Like).AuthorID.Hex())
		},
	})
	ts.like.AddFieldConfig("post", &graphql.Field{
		Type: graphql.NewNonNull(ts.post),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.posts.GetPostByID(p.Context, p.Source.(*models.Like).PostID.Hex())
		},
	})

	return ts
}
