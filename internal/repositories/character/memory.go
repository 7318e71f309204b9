package character

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// InMemoryRepository implements Repository in process memory. Records are
// held in their encoded form so every read returns an independent copy.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
	owner map[string]string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
		owner: make(map[string]string),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	data, err := encodeCharacter(input.Character)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Character.ID]; exists {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}
	r.store[input.Character.ID] = data
	r.owner[input.Character.ID] = input.Character.PlayerID

	return &CreateOutput{Character: input.Character}, nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: char}, nil
}

func (r *InMemoryRepository) load(id string) (*dnd5e.Character, error) {
	data, exists := r.store[id]
	if !exists {
		return nil, errors.NotFoundf("character with ID %s not found", id)
	}
	return decodeCharacter(id, data)
}

// Update applies Mutate under the write lock
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	char, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}
	if err := mutateCopy(char, input.Mutate); err != nil {
		return nil, err
	}

	data, err := encodeCharacter(char)
	if err != nil {
		return nil, err
	}
	r.store[input.ID] = data
	r.owner[input.ID] = char.PlayerID

	return &UpdateOutput{Character: char}, nil
}

// Delete removes a character by ID
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)
	delete(r.owner, input.ID)

	return &DeleteOutput{}, nil
}

// ListByPlayerID returns a player's characters, oldest first
func (r *InMemoryRepository) ListByPlayerID(_ context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	characters := make([]*dnd5e.Character, 0)
	for id, owner := range r.owner {
		if owner != input.PlayerID {
			continue
		}
		char, err := r.load(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, char)
	}
	sortByCreated(characters)

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

var _ Repository = (*InMemoryRepository)(nil)
