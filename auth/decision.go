// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "context"

// Action is a mutating poll operation
type Action int

const (
	ActionUpdate Action = iota
	ActionDelete
)

func (a Action) String() string {
	if a == ActionDelete {
		return "delete"
	}
	return "update"
}

// Decision is the result of Authorize
type Decision struct {
	Allowed bool
	Owner   bool
	Admin   bool
}

// Authorize decides whether callerID may perform action on a poll owned by
// ownerID. Owners may update and delete. Administrators may delete any poll.
// The admin lookup only runs when it can change the outcome.
func Authorize(ctx context.Context, roles RoleStore, action Action, callerID, ownerID string) Decision {
	if callerID == "" {
		return Decision{}
	}

	d := Decision{Owner: callerID == ownerID}
	if d.Owner {
		d.Allowed = true
		return d
	}

	if action == ActionDelete {
		d.Admin = IsAdmin(ctx, roles, callerID)
		d.Allowed = d.Admin
	}
	return d
}
