package models

import "time"

// Post represents an entry in the feed. Author fields are copied at creation
// and are not updated if the author's record changes later.
type Post struct {
	ID         string     `json:"id" yaml:"id"`
	AuthorID   string     `json:"authorId" yaml:"authorId"`
	AuthorName string     `json:"authorName" yaml:"authorName"`
	AuthorDept Department `json:"authorDept" yaml:"authorDept"`
	Content    string     `json:"content" yaml:"content"`
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
	Likes      int        `json:"likes" yaml:"likes"`
}
