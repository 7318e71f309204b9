// Package character persists character sheets. Stores keep the JSON form of
// the aggregate and decode it on every read.
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-sheet/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	// Returns errors.InvalidArgument for a nil character or empty ID
	// Returns errors.AlreadyExists if a character with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.DataLoss if the stored form cannot be decoded
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update loads the character, applies Mutate and writes the result in
	// one atomic step. Nothing is written when Mutate fails; its error is
	// returned unchanged.
	// Returns errors.InvalidArgument for empty IDs or a nil Mutate
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.DataLoss if the stored form cannot be decoded
	// Returns errors.Aborted if another writer committed first
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all characters owned by a player, ordered by
	// creation time
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// MutateFunc edits a loaded character in place
type MutateFunc func(c *dnd5e.Character) error

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *dnd5e.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *dnd5e.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *dnd5e.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	ID     string
	Mutate MutateFunc
}

// UpdateOutput carries the character as committed
type UpdateOutput struct {
	Character *dnd5e.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing characters by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing characters by player
type ListByPlayerIDOutput struct {
	Characters []*dnd5e.Character
}
