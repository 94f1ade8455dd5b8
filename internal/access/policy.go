// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"fmt"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// # Policies

// Policy is an ordered OR-composition of predicates.
type Policy struct {
	predicates []Predicate
}

// AnyOf composes predicates with logical OR.
func AnyOf(predicates ...Predicate) Policy {
	return Policy{predicates: predicates}
}

// Predicates returns the composed predicates in evaluation order.
func (p Policy) Predicates() []Predicate {
	return append([]Predicate(nil), p.predicates...)
}

// Allows runs the permission-level phase.
func (p Policy) Allows(actor Actor, action Action) bool {
	for _, predicate := range p.predicates {
		if predicate.HasPermission(actor, action) {
			return true
		}
	}
	return false
}

// AllowsObject runs the object-level phase. A predicate grants access only
// if it passes both its permission-level and object-level checks.
func (p Policy) AllowsObject(actor Actor, action Action, target Owned) bool {
	for _, predicate := range p.predicates {
		if predicate.HasPermission(actor, action) && predicate.HasObjectPermission(actor, action, target) {
			return true
		}
	}
	return false
}

// Authorize returns nil when the permission-level phase allows the action,
// otherwise an Unauthorized error for anonymous actors or Forbidden.
func (p Policy) Authorize(actor Actor, action Action) error {
	if p.Allows(actor, action) {
		return nil
	}
	return p.deny(actor, action)
}

// AuthorizeObject returns nil when the action is allowed on target.
func (p Policy) AuthorizeObject(actor Actor, action Action, target Owned) error {
	if p.Allows(actor, action) && p.AllowsObject(actor, action, target) {
		return nil
	}
	return p.deny(actor, action)
}

// deny builds the rejection. The cause names the predicates that were tried
// and is logged server-side only.
func (p Policy) deny(actor Actor, action Action) error {
	names := make([]string, 0, len(p.predicates))
	for _, predicate := range p.predicates {
		names = append(names, predicate.Name())
	}
	cause := fmt.Errorf("access: %s denied to %q by [%s]", action, actor.Username, strings.Join(names, " | "))

	if !actor.Authenticated() {
		return apperr.Unauthorized("Authentication credentials were not provided").WithCause(cause)
	}
	return apperr.Forbidden("You do not have permission to perform this action").WithCause(cause)
}

// # Resource Policies

var (
	// Catalogue covers categories, genres and titles: reads for everyone,
	// writes for admins.
	Catalogue = AnyOf(Everyone, IsAdminOrSuperuser)

	// Content covers reviews and comments: reads for everyone, authors edit
	// their own, moderators and admins edit anything.
	Content = AnyOf(Everyone, IsUser, IsModerator, IsAdminOrSuperuser)

	// UserAdmin covers the user management endpoints.
	UserAdmin = AnyOf(IsAdminOrSuperuser)

	// Self covers the /users/me alias.
	Self = AnyOf(IsAuthenticated)
)
