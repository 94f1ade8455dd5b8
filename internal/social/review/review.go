// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages the scored reviews users write about titles.

Reviews live under their title (/titles/{title_id}/reviews). Each author may
review a title once; the database enforces that with a unique constraint so
two racing submissions cannot both land. Editing an existing review is not a
second review and skips that check.

Anyone may read reviews. Authors edit and delete their own; moderators and
admins edit and delete any.
*/
package review

import "time"

// resourceReview names the entity in NotFound errors.
const resourceReview = "Review"

// # Domain Entities

// Review is one author's scored opinion of a title.
type Review struct {
	ID       string    `json:"id"`
	TitleID  string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// OwnerID implements [access.Owned].
func (r *Review) OwnerID() string { return r.AuthorID }

// Input is the create and update payload. On update nil fields are left
// unchanged. The author always comes from the request's actor.
type Input struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"

	// ParamReviewID is the URL parameter addressing one review.
	ParamReviewID = "review_id"
)
