package service

import (
	"context"
	"fmt"
	"slices"

	"nexus/internal/models"
	"nexus/internal/repository"
	"nexus/internal/validation"
)

// CreatePost prepends a post by author with zero likes.
func (s *State) CreatePost(ctx context.Context, author models.User, content string) (models.Post, error) {
	text, err := validation.NormalizePostContent(content)
	if err != nil {
		return models.Post{}, models.NewValidationError(err.Error())
	}

	s.mu.Lock()
	post := models.Post{
		ID:         s.ids.Next(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorDept: author.Department,
		Content:    text,
		Timestamp:  s.now(),
		Likes:      0,
	}
	posts := prepend(s.posts, post)
	if err := s.store.Save(ctx, repository.KeyPosts, posts); err != nil {
		s.mu.Unlock()
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.posts = posts
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionPosts, Action: "create", ID: post.ID})
	return post, nil
}

// LikePost increments the like count of the post with id.
func (s *State) LikePost(ctx context.Context, id string) (models.Post, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return models.Post{}, fmt.Errorf("like post %s: %w", id, ErrPostNotFound)
	}
	posts := slices.Clone(s.posts)
	posts[idx].Likes++
	if err := s.store.Save(ctx, repository.KeyPosts, posts); err != nil {
		s.mu.Unlock()
		return models.Post{}, fmt.Errorf("like post %s: %w", id, err)
	}
	s.posts = posts
	liked := posts[idx]
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionPosts, Action: "like", ID: id})
	return liked, nil
}
