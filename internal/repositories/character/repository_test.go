package character

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils"
)

// backend builds a fresh store and knows how to plant raw records in it
type backend struct {
	name string
	open func(t *testing.T) (Repository, func(id, playerID string, raw []byte))
}

func backends() []backend {
	return []backend{
		{
			name: "memory",
			open: func(_ *testing.T) (Repository, func(string, string, []byte)) {
				repo := NewInMemory()
				return repo, func(id, playerID string, raw []byte) {
					repo.store[id] = raw
					repo.owner[id] = playerID
				}
			},
		},
		{
			name: "redis",
			open: func(t *testing.T) (Repository, func(string, string, []byte)) {
				client, mr := testutils.CreateTestRedisClient(t)
				repo, err := NewRedis(&RedisConfig{Client: client})
				if err != nil {
					t.Fatal(err)
				}
				return repo, func(id, playerID string, raw []byte) {
					seedRedis(mr, id, playerID, raw)
				}
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) (Repository, func(string, string, []byte)) {
				repo, err := NewSQLite(context.Background(), &SQLiteConfig{
					Path: filepath.Join(t.TempDir(), "sheet.db"),
				})
				if err != nil {
					t.Fatal(err)
				}
				t.Cleanup(func() { _ = repo.Close() })
				return repo, func(id, playerID string, raw []byte) {
					_, err := repo.db.Exec(
						`INSERT INTO characters (id, player_id, data, created_at, updated_at) VALUES (?, ?, ?, 0, 0)`,
						id, playerID, raw)
					if err != nil {
						t.Fatal(err)
					}
				}
			},
		},
	}
}

func seedRedis(mr *miniredis.Miniredis, id, playerID string, raw []byte) {
	_ = mr.Set(characterKeyPrefix+id, string(raw))
	if playerID != "" {
		_, _ = mr.SAdd(playerIndexPrefix+playerID, id)
	}
}

type RepositoryContractSuite struct {
	suite.Suite
	backend backend
	repo    Repository
	seed    func(id, playerID string, raw []byte)
	ctx     context.Context
}

func (s *RepositoryContractSuite) SetupTest() {
	s.repo, s.seed = s.backend.open(s.T())
	s.ctx = context.Background()
}

func (s *RepositoryContractSuite) create(id, playerID string, created time.Time) *dnd5e.Character {
	char := testutils.NewTestCharacterWith(s.T(), dnd5e.NewCharacterInput{
		ID:       id,
		PlayerID: playerID,
		Now:      created,
	})
	_, err := s.repo.Create(s.ctx, CreateInput{Character: char})
	s.Require().NoError(err)
	return char
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	char := s.create("char_1", "player_1", testutils.FixtureTime)

	got, err := s.repo.Get(s.ctx, GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Equal(char, got.Character)
}

func (s *RepositoryContractSuite) TestCreateRejectsDuplicate() {
	char := s.create("char_1", "player_1", testutils.FixtureTime)

	_, err := s.repo.Create(s.ctx, CreateInput{Character: char})
	s.True(errors.IsAlreadyExists(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestCreateValidatesInput() {
	_, err := s.repo.Create(s.ctx, CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, CreateInput{Character: &dnd5e.Character{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, GetInput{ID: "nope"})
	s.True(errors.IsNotFound(err), "got %v", err)

	_, err = s.repo.Get(s.ctx, GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestGetCorruptRecord() {
	s.seed("char_bad", "player_1", []byte("{not json"))

	_, err := s.repo.Get(s.ctx, GetInput{ID: "char_bad"})
	s.True(errors.IsDataLoss(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestGetUnknownTag() {
	s.seed("char_orc", "player_1", []byte(`{"id":"char_orc","race":"RACE_ORC"}`))

	_, err := s.repo.Get(s.ctx, GetInput{ID: "char_orc"})
	s.True(errors.IsDataLoss(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestGetIncompleteRecord() {
	s.seed("char_thin", "player_1", []byte(`{"id":"char_thin"}`))

	_, err := s.repo.Get(s.ctx, GetInput{ID: "char_thin"})
	s.True(errors.IsDataLoss(err), "got %v", err)
}

func (s *RepositoryContractSuite) TestUpdateAppliesMutation() {
	s.create("char_1", "player_1", testutils.FixtureTime)

	out, err := s.repo.Update(s.ctx, UpdateInput{
		ID: "char_1",
		Mutate: func(c *dnd5e.Character) error {
			c.HP = 12
			c.Abilities.SetScore(dnd5e.AbilityStrength, 16)
			return nil
		},
	})
	s.Require().NoError(err)
	s.Equal(12, out.Character.HP)

	got, err := s.repo.Get(s.ctx, GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Equal(12, got.Character.HP)
	s.Equal(3, got.Character.Abilities.Strength.Modifier())
}

func (s *RepositoryContractSuite) TestUpdateMutateErrorWritesNothing() {
	s.create("char_1", "player_1", testutils.FixtureTime)

	_, err := s.repo.Update(s.ctx, UpdateInput{
		ID: "char_1",
		Mutate: func(c *dnd5e.Character) error {
			c.HP = 99
			return errors.InvalidArgument("hp cannot be negative")
		},
	})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "hp cannot be negative")

	got, err := s.repo.Get(s.ctx, GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Equal(1, got.Character.HP)
}

func (s *RepositoryContractSuite) TestUpdateRejectsIDChange() {
	s.create("char_1", "player_1", testutils.FixtureTime)

	_, err := s.repo.Update(s.ctx, UpdateInput{
		ID: "char_1",
		Mutate: func(c *dnd5e.Character) error {
			c.ID = "char_2"
			return nil
		},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, UpdateInput{
		ID:     "nope",
		Mutate: func(*dnd5e.Character) error { return nil },
	})
	s.True(errors.IsNotFound(err), "got %v", err)

	_, err = s.repo.Update(s.ctx, UpdateInput{ID: "nope"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestDelete() {
	s.create("char_1", "player_1", testutils.FixtureTime)

	_, err := s.repo.Delete(s.ctx, DeleteInput{ID: "char_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, GetInput{ID: "char_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, DeleteInput{ID: "char_1"})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(list.Characters)
}

func (s *RepositoryContractSuite) TestDeleteCorruptRecord() {
	s.seed("char_bad", "player_1", []byte("{not json"))

	_, err := s.repo.Delete(s.ctx, DeleteInput{ID: "char_bad"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, GetInput{ID: "char_bad"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestListByPlayerIDOrdersByCreation() {
	base := testutils.FixtureTime
	s.create("char_b", "player_1", base.Add(2*time.Hour))
	s.create("char_a", "player_1", base)
	s.create("char_c", "player_2", base.Add(time.Hour))

	list, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Characters, 2)
	s.Equal("char_a", list.Characters[0].ID)
	s.Equal("char_b", list.Characters[1].ID)

	empty, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_9"})
	s.Require().NoError(err)
	s.Empty(empty.Characters)

	_, err = s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestUpdateMovesPlayerIndex() {
	s.create("char_1", "player_1", testutils.FixtureTime)

	_, err := s.repo.Update(s.ctx, UpdateInput{
		ID: "char_1",
		Mutate: func(c *dnd5e.Character) error {
			c.PlayerID = "player_2"
			return nil
		},
	})
	s.Require().NoError(err)

	old, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(old.Characters)

	moved, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_2"})
	s.Require().NoError(err)
	s.Len(moved.Characters, 1)
}

func (s *RepositoryContractSuite) TestListSurfacesCorruptRecord() {
	s.create("char_1", "player_1", testutils.FixtureTime)
	s.seed("char_bad", "player_1", []byte("{not json"))

	_, err := s.repo.ListByPlayerID(s.ctx, ListByPlayerIDInput{PlayerID: "player_1"})
	s.True(errors.IsDataLoss(err), "got %v", err)
}

func TestRepositoryContract(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			suite.Run(t, &RepositoryContractSuite{backend: b})
		})
	}
}
