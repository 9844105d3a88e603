package core

import "github.com/google/uuid"

// NewRunID creates a time-ordered identifier for a simulation run.
// UUID v7 keeps run ids sortable by start time; v4 is used if v7 fails.
func NewRunID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id
}
