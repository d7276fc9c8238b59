package graph

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeSchema(t *testing.T, env *testEnv, ctx context.Context, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	schema, err := NewSchema(env.resolver)
	require.NoError(t, err)
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func dataMap(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, result.Errors, "unexpected GraphQL errors: %v", result.Errors)
	m, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return m
}

func firstErrorMessage(result *graphql.Result) string {
	if len(result.Errors) == 0 {
		return ""
	}
	return result.Errors[0].Message
}

func TestCreateUserAndLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	register := `mutation Register($username: String!, $email: String!, $password: String!) {
		createUser(username: $username, email: $email, password: $password) {
			token
			user { id username email }
		}
	}`
	result := executeSchema(t, env, ctx, register, map[string]interface{}{
		"username": "alice", "email": "alice@example.com", "password": "hunter22",
	})
	payload := dataMap(t, result)["createUser"].(map[string]interface{})
	userData := payload["user"].(map[string]interface{})
	assert.Equal(t, "alice", userData["username"])

	// The token must resolve back to the new account.
	claims, err := env.tokens.Parse(payload["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, userData["id"], claims.UserID)

	// Registering the same username again is rejected.
	result = executeSchema(t, env, ctx, register, map[string]interface{}{
		"username": "alice", "email": "other@example.com", "password": "hunter22",
	})
	assert.Equal(t, "User already exists", firstErrorMessage(result))

	login := `mutation Login($username: String!, $password: String!) {
		login(username: $username, password: $password) { token user { id } }
	}`
	result = executeSchema(t, env, ctx, login, map[string]interface{}{
		"username": "alice", "password": "hunter22",
	})
	loginPayload := dataMap(t, result)["login"].(map[string]interface{})
	assert.NotEmpty(t, loginPayload["token"])

	result = executeSchema(t, env, ctx, login, map[string]interface{}{
		"username": "alice", "password": "wrong-password",
	})
	assert.Equal(t, "Invalid password", firstErrorMessage(result))

	result = executeSchema(t, env, ctx, login, map[string]interface{}{
		"username": "nobody", "password": "hunter22",
	})
	assert.Equal(t, "User not found", firstErrorMessage(result))
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := newTestEnv()

	query := `mutation { createPost(title: "Hello", content: "World") { id } }`
	result := executeSchema(t, env, context.Background(), query, nil)
	assert.Equal(t, "Authentication required", firstErrorMessage(result))
}

func TestToggleLikeThroughSchema(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "alice")
	ctx := viewerCtx(user)

	createPost := `mutation { createPost(title: "Hello", content: "World", tags: ["go"]) { id title tags } }`
	result := executeSchema(t, env, ctx, createPost, nil)
	postData := dataMap(t, result)["createPost"].(map[string]interface{})
	postID := postData["id"].(string)
	assert.Equal(t, "Hello", postData["title"])

	toggle := `mutation Toggle($postId: ID!) {
		toggleLike(postId: $postId) {
			id
			author { id username }
			post { id }
		}
	}`

	// First toggle: now liked.
	result = executeSchema(t, env, ctx, toggle, map[string]interface{}{"postId": postID})
	likeData := dataMap(t, result)["toggleLike"].(map[string]interface{})
	assert.Equal(t, "alice", likeData["author"].(map[string]interface{})["username"])
	assert.Equal(t, postID, likeData["post"].(map[string]interface{})["id"])

	// The feed shows the like.
	postQuery := `query GetPost($id: ID!) {
		post(id: $id) { id likes { id author { username } } }
	}`
	result = executeSchema(t, env, ctx, postQuery, map[string]interface{}{"id": postID})
	likes := dataMap(t, result)["post"].(map[string]interface{})["likes"].([]interface{})
	require.Len(t, likes, 1)

	// Second toggle: now unliked, null result.
	result = executeSchema(t, env, ctx, toggle, map[string]interface{}{"postId": postID})
	assert.Nil(t, dataMap(t, result)["toggleLike"])

	result = executeSchema(t, env, ctx, postQuery, map[string]interface{}{"id": postID})
	likes = dataMap(t, result)["post"].(map[string]interface{})["likes"].([]interface{})
	assert.Empty(t, likes)
}

func TestCommentsThroughSchema(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "alice")
	post := env.addPost(t, user)
	ctx := viewerCtx(user)

	createComment := `mutation Comment($postId: ID!, $content: String!) {
		createComment(postId: $postId, content: $content) {
			id
			content
			author { username }
		}
	}`
	result := executeSchema(t, env, ctx, createComment, map[string]interface{}{
		"postId": post.ID.Hex(), "content": "nice post",
	})
	commentData := dataMap(t, result)["createComment"].(map[string]interface{})
	assert.Equal(t, "nice post", commentData["content"])
	assert.Equal(t, "alice", commentData["author"].(map[string]interface{})["username"])

	commentsQuery := `query Comments($postId: ID!) {
		comments(postId: $postId) { id content }
	}`
	result = executeSchema(t, env, ctx, commentsQuery, map[string]interface{}{"postId": post.ID.Hex()})
	comments := dataMap(t, result)["comments"].([]interface{})
	require.Len(t, comments, 1)

	// The post's comment back-reference list was updated too.
	stored, err := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.CommentIDs, 1)
}

func TestPostsQueryCursor(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(t, "alice")
	older := env.addPost(t, user)
	newer := env.addPost(t, user)

	// Spread creation times so the cursor has something to split.
	cut := time.Now().Add(-time.Hour)
	env.posts.mu.Lock()
	env.posts.posts[older.ID].CreatedAt = cut.Add(-time.Hour)
	env.posts.posts[newer.ID].CreatedAt = cut.Add(time.Hour)
	env.posts.mu.Unlock()

	query := `query Feed($cursor: String) {
		posts(cursor: $cursor) { id }
	}`
	result := executeSchema(t, env, context.Background(), query, map[string]interface{}{
		"cursor": cut.Format(time.RFC3339),
	})
	posts := dataMap(t, result)["posts"].([]interface{})
	require.Len(t, posts, 1, "cursor is an exclusive upper bound on createdAt")
	assert.Equal(t, older.ID.Hex(), posts[0].(map[string]interface{})["id"])

	result = executeSchema(t, env, context.Background(), query, nil)
	assert.Len(t, dataMap(t, result)["posts"].([]interface{}), 2)
}
