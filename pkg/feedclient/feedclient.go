// Package feedclient maintains a local, render-ready view of the post feed
// on top of the GraphQL API, with optimistic like toggling.
//
// A toggle is applied to the local cache immediately, before the network
// round trip, and reconciled against the server's authoritative answer when
// it arrives. The reconciliation recomputes the viewer's like entry from
// the response alone rather than trusting the optimistic edit, so it is
// idempotent regardless of what the guess was. On failure the edit is
// discarded and the last known-good state restored. Toggles are serialized
// per post: a second toggle for a post with one still in flight is refused,
// which keeps responses applying in request order.
package feedclient

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrToggleInFlight is returned when a like toggle for the same post
	// has not yet resolved. Callers disable the control and retry after
	// the pending toggle completes.
	ErrToggleInFlight = errors.New("like toggle already in flight for this post")

	// ErrUnknownPost is returned when the post is not in the cached feed.
	ErrUnknownPost = errors.New("post not in feed")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("feed client closed")
)

const provisionalIDPrefix = "provisional:"

// Like is the cached view of a like record
type Like struct {
	ID             string
	AuthorID       string
	AuthorUsername string
}

// Provisional reports whether this like is an optimistic guess that has not
// been confirmed by the server yet.
func (l Like) Provisional() bool {
	return strings.HasPrefix(l.ID, provisionalIDPrefix)
}

// Post is the cached view of a feed post
type Post struct {
	ID      string
	Title   string
	Content string
	Likes   []Like
}

// Client holds the cached feed for a single authenticated viewer.
// All methods are safe for concurrent use.
type Client struct {
	transport *transport
	viewerID  string

	mu       sync.Mutex
	posts    map[string]*Post
	inflight map[string]bool
	closed   bool
}

// New creates a Client for the given GraphQL endpoint. The bearer token and
// viewer id come from the login response.
func New(endpoint, token, viewerID string) *Client {
	return &Client{
		transport: newTransport(endpoint, token),
		viewerID:  viewerID,
		posts:     make(map[string]*Post),
		inflight:  make(map[string]bool),
	}
}

// LoadFeed fetches the post feed and replaces the cached view
func (c *Client) LoadFeed(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	posts, err := c.transport.fetchPosts(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.posts = make(map[string]*Post, len(posts))
	for i := range posts {
		c.posts[posts[i].ID] = &posts[i]
	}
	return nil
}

// Post returns a copy of the cached post, if present
func (c *Client) Post(id string) (Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.posts[id]
	if !ok {
		return Post{}, false
	}
	out := *p
	out.Likes = append([]Like(nil), p.Likes...)
	return out, true
}

// LikedByViewer reports whether the cached view shows the viewer liking the
// post. A provisional like counts: this is what the UI renders.
func (c *Client) LikedByViewer(postID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.posts[postID]
	if !ok {
		return false
	}
	return likeIndex(p.Likes, c.viewerID) >= 0
}

// ToggleLike flips the viewer's like state on a post.
//
// The cached view changes synchronously before the request is sent; the
// return value reports the authoritative outcome. A non-nil error means the
// optimistic edit was rolled back and the caller should surface the failure
// once (no automatic retry).
func (c *Client) ToggleLike(ctx context.Context, postID string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	post, ok := c.posts[postID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownPost
	}
	if c.inflight[postID] {
		c.mu.Unlock()
		return ErrToggleInFlight
	}

	// Snapshot, then apply the provisional edit.
	snapshot := append([]Like(nil), post.Likes...)
	if idx := likeIndex(post.Likes, c.viewerID); idx >= 0 {
		post.Likes = append(post.Likes[:idx:idx], post.Likes[idx+1:]...)
	} else {
		post.Likes = append(post.Likes, Like{
			ID:       provisionalIDPrefix + postID,
			AuthorID: c.viewerID,
		})
	}
	c.inflight[postID] = true
	c.mu.Unlock()

	result, err := c.transport.toggleLike(ctx, postID)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, postID)

	// The view is gone; reconciling would update unmounted state.
	if c.closed {
		return nil
	}
	post, ok = c.posts[postID]
	if !ok {
		return nil
	}

	if err != nil {
		post.Likes = snapshot
		return err
	}

	// Reconcile from the authoritative signal alone: a Like means exactly
	// one entry for the viewer, null means zero. The optimistic guess is
	// discarded either way.
	post.Likes = withoutAuthor(post.Likes, c.viewerID)
	if result != nil {
		post.Likes = append(post.Likes, *result)
	}
	return nil
}

// Close drops the cached view. In-flight toggles resolve without touching
// the cache.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.posts = nil
}

func likeIndex(likes []Like, authorID string) int {
	for i, l := range likes {
		if l.AuthorID == authorID {
			return i
		}
	}
	return -1
}

func withoutAuthor(likes []Like, authorID string) []Like {
	out := likes[:0]
	for _, l := range likes {
		if l.AuthorID != authorID {
			out = append(out, l)
		}
	}
	return out
}
