package models

// Role is a named permission group. Only ID and Name are persisted;
// NormalizedName lives on the in-memory entity and is written by the
// framework through SetNormalizedRoleName before an Update.
type Role struct {
	ID             string
	Name           string
	NormalizedName string
}
