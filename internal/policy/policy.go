// Package policy holds the authorization predicates. Each predicate is a
// pure function over the requesting identity (nil for anonymous
// callers), whether the operation mutates state, and where relevant the
// author of the target object. A false result must surface as Forbidden,
// never as silent filtering.
package policy

import "reviewhub/internal/model"

// ReadOnlyOrAdmin permits non-mutating operations for anyone, mutations
// only for authenticated admins.
func ReadOnlyOrAdmin(requester *model.User, mutating bool) bool {
	if !mutating {
		return true
	}
	return requester != nil && requester.IsAdmin()
}

// AdminOnly permits only authenticated admins or superusers.
func AdminOnly(requester *model.User) bool {
	return requester != nil && (requester.IsAdmin() || requester.Superuser)
}

// OwnerOrEscalated permits non-mutating operations for anyone; mutations
// require the object's author or escalated standing.
func OwnerOrEscalated(requester *model.User, mutating bool, authorID uint) bool {
	if !mutating {
		return true
	}
	if requester == nil {
		return false
	}
	return requester.IsAdmin() ||
		requester.IsModerator() ||
		requester.Superuser ||
		requester.ID == authorID
}

// AnonymousOnly permits only unauthenticated callers.
func AnonymousOnly(requester *model.User) bool {
	return requester == nil
}
