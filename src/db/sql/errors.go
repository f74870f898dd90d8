package db

import "errors"

// Sentinel errors returned by the query layer so handlers can pick the right
// status code without string matching.
var (
	ErrSummaryNotFound    = errors.New("no summary for this group and period")
	ErrSpaceNotFound      = errors.New("space not found")
	ErrLinkedUserNotFound = errors.New("linked user not found")
	ErrAlreadyLinked      = errors.New("user is already linked to this space")
	ErrLinkNotFound       = errors.New("user is not linked to this space")
	ErrLinkOwner          = errors.New("cannot link the owner to their own space")
)
