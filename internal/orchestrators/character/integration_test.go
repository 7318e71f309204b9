package character_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	charactersvc "github.com/KirkDiggler/rpg-sheet/internal/services/character"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils"
)

// IntegrationTestSuite drives the orchestrator against real stores and the
// rpg-toolkit engine
type IntegrationTestSuite struct {
	suite.Suite
	newRepo      func() characterrepo.Repository
	orchestrator *character.Orchestrator
	dispatcher   *character.Dispatcher
	ctx          context.Context
}

func (s *IntegrationTestSuite) SetupTest() {
	s.ctx = context.Background()

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:   events.NewBus(),
		DiceRoller: dice.DefaultRoller,
	})
	s.Require().NoError(err)

	orchestrator, err := character.New(&character.Config{
		CharacterRepo: s.newRepo(),
		Engine:        adapter,
		Clock:         clock.NewFixed(testutils.FixtureTime),
		IDGenerator:   idgen.NewSequential("id"),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
	s.dispatcher = character.NewDispatcher()
}

func (s *IntegrationTestSuite) TearDownTest() {
	s.NoError(s.dispatcher.Close(s.ctx))
}

func (s *IntegrationTestSuite) create(name string) *dnd5e.Character {
	output, err := s.orchestrator.CreateCharacter(s.ctx, &charactersvc.CreateCharacterInput{
		PlayerID: "player-1",
		Name:     name,
		Class:    dnd5e.ClassFighter,
	})
	s.Require().NoError(err)
	return output.Character
}

func (s *IntegrationTestSuite) receive(ch <-chan *dnd5e.Character) *dnd5e.Character {
	select {
	case c, ok := <-ch:
		s.Require().True(ok, "watch stream closed early")
		return c
	case <-time.After(5 * time.Second):
		s.FailNow("timed out waiting for a character change")
		return nil
	}
}

func (s *IntegrationTestSuite) TestCreateGetList() {
	first := s.create("Tordek")
	second := s.create("Mialee")

	got, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: first.ID})
	s.Require().NoError(err)
	s.Equal(first.Name, got.Character.Name)
	s.Len(got.Character.Skills, len(dnd5e.SkillTypes))

	list, err := s.orchestrator.ListCharacters(s.ctx, &charactersvc.ListCharactersInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Require().Len(list.Characters, 2)
	s.Equal(first.ID, list.Characters[0].ID)
	s.Equal(second.ID, list.Characters[1].ID)
}

func (s *IntegrationTestSuite) TestLevelUpRollsRealDice() {
	created := s.create("Tordek")

	output, err := s.orchestrator.LevelUp(s.ctx, &charactersvc.LevelUpInput{
		CharacterID:   created.ID,
		Class:         dnd5e.ClassFighter,
		RollHitPoints: true,
	})
	s.Require().NoError(err)
	s.Require().Len(output.HitPointRolls, 1)
	s.GreaterOrEqual(output.HitPointRolls[0], 1)
	s.LessOrEqual(output.HitPointRolls[0], 10)
	s.Equal(2, output.Character.Level())

	got, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: created.ID})
	s.Require().NoError(err)
	s.Equal(output.Character.BaseHP, got.Character.BaseHP)
}

func (s *IntegrationTestSuite) TestFailedMutationLeavesCharacterUntouched() {
	created := s.create("Tordek")

	_, err := s.orchestrator.DeleteNote(s.ctx, &charactersvc.DeleteNoteInput{
		CharacterID: created.ID,
		NoteID:      "note-missing",
	})
	s.True(errors.IsNotFound(err))

	got, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: created.ID})
	s.Require().NoError(err)
	s.Equal(created.Notes, got.Character.Notes)
	s.Equal(created.Updated, got.Character.Updated)
}

func (s *IntegrationTestSuite) TestWatchStreamsSnapshotThenChanges() {
	created := s.create("Tordek")

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	stream, err := s.orchestrator.Watch(ctx, created.ID)
	s.Require().NoError(err)

	snapshot := s.receive(stream)
	s.Equal(created.ID, snapshot.ID)
	s.Equal(1, snapshot.HP)

	for hp := 2; hp <= 4; hp++ {
		_, err := s.orchestrator.UpdateHP(s.ctx, &charactersvc.UpdateHPInput{CharacterID: created.ID, HP: hp})
		s.Require().NoError(err)
	}
	for hp := 2; hp <= 4; hp++ {
		s.Equal(hp, s.receive(stream).HP)
	}

	_, err = s.orchestrator.DeleteCharacter(s.ctx, &charactersvc.DeleteCharacterInput{CharacterID: created.ID})
	s.Require().NoError(err)

	select {
	case _, ok := <-stream:
		s.False(ok, "the stream closes after the character is deleted")
	case <-time.After(5 * time.Second):
		s.FailNow("watch stream did not close")
	}
}

func (s *IntegrationTestSuite) TestWatchIgnoresOtherCharacters() {
	watched := s.create("Tordek")
	other := s.create("Mialee")

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	stream, err := s.orchestrator.Watch(ctx, watched.ID)
	s.Require().NoError(err)
	s.receive(stream)

	_, err = s.orchestrator.UpdateHP(s.ctx, &charactersvc.UpdateHPInput{CharacterID: other.ID, HP: 7})
	s.Require().NoError(err)
	_, err = s.orchestrator.UpdateHP(s.ctx, &charactersvc.UpdateHPInput{CharacterID: watched.ID, HP: 3})
	s.Require().NoError(err)

	next := s.receive(stream)
	s.Equal(watched.ID, next.ID)
	s.Equal(3, next.HP)
}

func (s *IntegrationTestSuite) TestWatchMissingCharacter() {
	stream, err := s.orchestrator.Watch(s.ctx, "char-missing")
	s.Nil(stream)
	s.True(errors.IsNotFound(err))
}

func (s *IntegrationTestSuite) TestWatchClosesWhenContextEnds() {
	created := s.create("Tordek")

	ctx, cancel := context.WithCancel(s.ctx)
	stream, err := s.orchestrator.Watch(ctx, created.ID)
	s.Require().NoError(err)
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-stream:
			if !ok {
				return
			}
		case <-deadline:
			s.FailNow("watch stream did not close")
		}
	}
}

func (s *IntegrationTestSuite) TestDispatcherAppliesSubmissionsInOrder() {
	created := s.create("Tordek")
	welcome := len(created.Notes)

	var pending []*character.Pending
	for i := 0; i < 10; i++ {
		text := fmt.Sprintf("entry %d", i)
		pending = append(pending, s.dispatcher.Submit(s.ctx, created.ID, func(ctx context.Context) error {
			_, err := s.orchestrator.CreateNote(ctx, &charactersvc.CreateNoteInput{
				CharacterID: created.ID,
				Text:        text,
			})
			return err
		}))
	}
	for _, p := range pending {
		s.Require().NoError(p.Wait(s.ctx))
	}

	got, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: created.ID})
	s.Require().NoError(err)
	s.Require().Len(got.Character.Notes, welcome+10)
	for i := 0; i < 10; i++ {
		s.Equal(fmt.Sprintf("entry %d", i), got.Character.Notes[welcome+i].Text)
	}
}

func (s *IntegrationTestSuite) TestConcurrentEditsOnDifferentCharacters() {
	chars := []*dnd5e.Character{s.create("Tordek"), s.create("Mialee"), s.create("Lidda")}

	var wg sync.WaitGroup
	for _, c := range chars {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for amount := 1; amount <= 5; amount++ {
				err := s.dispatcher.Submit(s.ctx, id, func(ctx context.Context) error {
					_, err := s.orchestrator.UpdateCoin(ctx, &charactersvc.UpdateCoinInput{
						CharacterID: id,
						Type:        dnd5e.CoinGold,
						Amount:      amount,
					})
					return err
				}).Wait(s.ctx)
				s.NoError(err)
			}
		}(c.ID)
	}
	wg.Wait()

	for _, c := range chars {
		got, err := s.orchestrator.GetCharacter(s.ctx, &charactersvc.GetCharacterInput{CharacterID: c.ID})
		s.Require().NoError(err)
		s.Equal(5, got.Character.Coins.Gold)
	}
}

func TestIntegrationInMemory(t *testing.T) {
	suite.Run(t, &IntegrationTestSuite{
		newRepo: func() characterrepo.Repository {
			return characterrepo.NewInMemory()
		},
	})
}

func TestIntegrationRedis(t *testing.T) {
	s := &IntegrationTestSuite{}
	s.newRepo = func() characterrepo.Repository {
		client, _ := testutils.CreateTestRedisClient(s.T())
		repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
			Client: client,
			Clock:  clock.NewFixed(testutils.FixtureTime),
		})
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}
