// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment manages discussion threads attached to reviews.

Comments live under their review, which in turn lives under its title
(/titles/{title_id}/reviews/{review_id}/comments). A review that does not
belong to the addressed title is treated as absent. Threads are listed
newest first. Ownership rules are those of reviews.
*/
package comment

import "time"

// resourceComment names the entity in NotFound errors.
const resourceComment = "Comment"

// # Domain Entities

// Comment is one reply in a review's thread.
type Comment struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// OwnerID implements [access.Owned].
func (c *Comment) OwnerID() string { return c.AuthorID }

// Input is the create and update payload.
type Input struct {
	Text *string `json:"text"`
}

// # Field Identifiers

const (
	FieldText = "text"

	// ParamCommentID is the URL parameter addressing one comment.
	ParamCommentID = "comment_id"
)
