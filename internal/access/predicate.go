// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "github.com/taibuivan/yamdb/internal/platform/sec"

// # Predicates

// Predicate is a pure permission rule evaluated in two phases.
type Predicate interface {
	// Name identifies the predicate in logs and tests.
	Name() string

	// HasPermission decides from the actor and action alone.
	HasPermission(actor Actor, action Action) bool

	// HasObjectPermission refines the decision for a resolved target.
	HasObjectPermission(actor Actor, action Action, target Owned) bool
}

// everyone allows read-only actions to any actor, anonymous included.
type everyone struct{}

func (everyone) Name() string { return "everyone" }

func (everyone) HasPermission(_ Actor, action Action) bool {
	return action.Safe()
}

func (everyone) HasObjectPermission(_ Actor, action Action, _ Owned) bool {
	return action.Safe()
}

// isUser allows plain users to act, and to modify only what they authored.
type isUser struct{}

func (isUser) Name() string { return "is_user" }

func (isUser) HasPermission(actor Actor, _ Action) bool {
	return actor.Authenticated() && actor.Role == sec.RoleUser
}

func (isUser) HasObjectPermission(actor Actor, _ Action, target Owned) bool {
	return actor.Authenticated() && actor.Role == sec.RoleUser && actor.Owns(target)
}

// isModerator allows moderators to act on any resource.
type isModerator struct{}

func (isModerator) Name() string { return "is_moderator" }

func (isModerator) HasPermission(actor Actor, _ Action) bool {
	return actor.Authenticated() && actor.Role == sec.RoleModerator
}

func (isModerator) HasObjectPermission(actor Actor, _ Action, _ Owned) bool {
	return actor.Authenticated() && actor.Role == sec.RoleModerator
}

// isAdminOrSuperuser allows admins and superusers to act on any resource.
type isAdminOrSuperuser struct{}

func (isAdminOrSuperuser) Name() string { return "is_admin_or_superuser" }

func (isAdminOrSuperuser) HasPermission(actor Actor, _ Action) bool {
	return actor.Elevated()
}

func (isAdminOrSuperuser) HasObjectPermission(actor Actor, _ Action, _ Owned) bool {
	return actor.Elevated()
}

// isAuthenticated allows any actor with a valid identity, whatever the role.
type isAuthenticated struct{}

func (isAuthenticated) Name() string { return "is_authenticated" }

func (isAuthenticated) HasPermission(actor Actor, _ Action) bool {
	return actor.Authenticated()
}

func (isAuthenticated) HasObjectPermission(actor Actor, _ Action, _ Owned) bool {
	return actor.Authenticated()
}

// The predicates are stateless, so shared values are safe for concurrent use.
var (
	Everyone           Predicate = everyone{}
	IsUser             Predicate = isUser{}
	IsModerator        Predicate = isModerator{}
	IsAdminOrSuperuser Predicate = isAdminOrSuperuser{}
	IsAuthenticated    Predicate = isAuthenticated{}
)
