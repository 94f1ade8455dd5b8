// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access is the authorization engine of the API.

Every request is evaluated as a tuple of (actor, action class, optional target)
against a [Policy]: an ordered list of [Predicate] values combined with logical
OR. Each predicate answers two questions:

  - HasPermission: may the actor attempt this action at all? No target needed,
    used for listing and creation.
  - HasObjectPermission: may the actor perform it on this specific resource?
    Used for retrieve, update and delete of an existing resource.

An action on an existing resource is allowed when at least one predicate passes
BOTH phases. The engine is pure: it never touches storage.
*/
package access

import "github.com/taibuivan/yamdb/internal/platform/sec"

// # Action Classes

// Action is the class of operation an actor attempts on a resource.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

// String returns the action name used in logs.
func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRetrieve:
		return "retrieve"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Safe reports whether the action is read-only.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// # Actors

// Actor is the party making a request. The zero value is the anonymous actor.
type Actor struct {
	UserID      string
	Username    string
	Role        sec.UserRole
	IsSuperuser bool
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// FromClaims builds an actor from the request claims. Nil claims yield the
// anonymous actor. Authenticate refreshes role and superuser flag from the
// stored account before the claims reach this point.
func FromClaims(claims *sec.AuthClaims) Actor {
	if claims == nil {
		return Anonymous()
	}
	return Actor{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        sec.UserRole(claims.Role),
		IsSuperuser: claims.IsSuperuser,
	}
}

// Authenticated reports whether the actor presented a valid identity.
func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// Elevated reports whether the actor holds admin rights, either through the
// admin role or through the superuser flag.
func (a Actor) Elevated() bool {
	return a.Authenticated() && (a.Role == sec.RoleAdmin || a.IsSuperuser)
}

// Owns reports whether the actor is the author of target.
func (a Actor) Owns(target Owned) bool {
	return a.Authenticated() && target != nil && target.OwnerID() == a.UserID
}

// Owned is implemented by resources that have an author.
type Owned interface {
	OwnerID() string
}
