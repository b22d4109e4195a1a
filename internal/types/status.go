package types

// Status is a type for the lifecycle status of a resource in the database.
// It is used to determine whether a resource should be included in queries.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
