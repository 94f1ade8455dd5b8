// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:    "social.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Text:     "text",
	Score:    "score",
	PubDate:  "pubdate",
}

// Columns returns all standard column names
func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:    "social.comment",
	ID:       "id",
	ReviewID: "reviewid",
	AuthorID: "authorid",
	Text:     "text",
	PubDate:  "pubdate",
}

// Columns returns all standard column names
func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate}
}
