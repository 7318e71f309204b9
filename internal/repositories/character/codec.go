package character

import (
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errMutateNil        = "mutate function cannot be nil"
)

func validateCreate(input CreateInput) error {
	if input.Character == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}

func validateUpdate(input UpdateInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Mutate == nil {
		return errors.InvalidArgument(errMutateNil)
	}
	return nil
}

func encodeCharacter(c *dnd5e.Character) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character %s", c.ID)
	}
	return data, nil
}

// decodeCharacter rebuilds a character from its stored form. Anything that
// cannot be resolved back into a valid aggregate is DataLoss.
func decodeCharacter(id string, data []byte) (*dnd5e.Character, error) {
	var c dnd5e.Character
	if err := json.Unmarshal(data, &c); err != nil {
		if errors.IsDataLoss(err) {
			return nil, errors.Wrapf(err, "failed to decode character %s", id).WithMeta("character_id", id)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to decode character %s", id).
			WithMeta("character_id", id)
	}
	if err := c.CheckIntegrity(); err != nil {
		return nil, errors.Wrapf(err, "character %s failed integrity check", id).WithMeta("character_id", id)
	}
	if c.ID != id {
		return nil, errors.DataLossf("stored character %s carries id %q", id, c.ID).WithMeta("character_id", id)
	}
	return &c, nil
}

// mutateCopy runs fn and rejects edits to the identifying fields
func mutateCopy(c *dnd5e.Character, fn MutateFunc) error {
	id := c.ID
	if err := fn(c); err != nil {
		return err
	}
	if c.ID != id {
		return errors.InvalidArgument("character ID cannot be changed")
	}
	return nil
}

func sortByCreated(list []*dnd5e.Character) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Created.Equal(list[j].Created) {
			return list[i].Created.Before(list[j].Created)
		}
		return list[i].ID < list[j].ID
	})
}

// ownerOf pulls the player id out of a stored record without a full decode
func ownerOf(data []byte) string {
	var head struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return ""
	}
	return head.PlayerID
}
