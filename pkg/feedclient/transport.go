package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const postsQuery = `query GetPosts($limit: Int) {
  posts(limit: $limit) {
    id
    title
    content
    likes {
      id
      author {
        id
        username
      }
    }
  }
}`

const toggleLikeMutation = `mutation ToggleLike($postId: ID!) {
  toggleLike(postId: $postId) {
    id
    author {
      id
      username
    }
  }
}`

// transport sends GraphQL operations over HTTP
type transport struct {
	endpoint string
	token    string
	httpc    *http.Client
}

func newTransport(endpoint, token string) *transport {
	return &transport{
		endpoint: endpoint,
		token:    token,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

type responseError struct {
	Message string `json:"message"`
}

type wireLike struct {
	ID     string `json:"id"`
	Author struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"author"`
}

func (w *wireLike) toLike() Like {
	return Like{
		ID:             w.ID,
		AuthorID:       w.Author.ID,
		AuthorUsername: w.Author.Username,
	}
}

func (t *transport) fetchPosts(ctx context.Context) ([]Post, error) {
	var resp struct {
		Data struct {
			Posts []struct {
				ID      string     `json:"id"`
				Title   string     `json:"title"`
				Content string     `json:"content"`
				Likes   []wireLike `json:"likes"`
			} `json:"posts"`
		} `json:"data"`
		Errors []responseError `json:"errors"`
	}
	if err := t.do(ctx, postsQuery, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("posts query failed: %s", resp.Errors[0].Message)
	}

	posts := make([]Post, 0, len(resp.Data.Posts))
	for _, p := range resp.Data.Posts {
		post := Post{ID: p.ID, Title: p.Title, Content: p.Content}
		for i := range p.Likes {
			post.Likes = append(post.Likes, p.Likes[i].toLike())
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// toggleLike returns the authoritative like record, or nil when the server
// reports the post is now unliked.
func (t *transport) toggleLike(ctx context.Context, postID string) (*Like, error) {
	var resp struct {
		Data struct {
			ToggleLike *wireLike `json:"toggleLike"`
		} `json:"data"`
		Errors []responseError `json:"errors"`
	}
	vars := map[string]interface{}{"postId": postID}
	if err := t.do(ctx, toggleLikeMutation, vars, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("toggle failed: %s", resp.Errors[0].Message)
	}
	if resp.Data.ToggleLike == nil {
		return nil, nil
	}
	like := resp.Data.ToggleLike.toLike()
	return &like, nil
}

func (t *transport) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	res, err := t.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", res.StatusCode, t.endpoint)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
