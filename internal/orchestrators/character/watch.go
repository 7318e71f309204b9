package character

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/services/character"
)

// watcher buffers committed changes for one Watch call. Publishers only
// append; they never wait on the reader.
type watcher struct {
	mu      sync.Mutex
	queue   []*dnd5e.Character
	deleted bool
	signal  chan struct{}
}

func newWatcher() *watcher {
	return &watcher{signal: make(chan struct{}, 1)}
}

func (w *watcher) handle(_ context.Context, change engine.CharacterChange) {
	w.mu.Lock()
	if change.Operation == character.OpDeleteCharacter {
		w.deleted = true
	} else {
		w.queue = append(w.queue, change.Character)
	}
	w.mu.Unlock()

	select {
	case w.signal <- struct{}{}:
	default:
	}
}

func (w *watcher) take() ([]*dnd5e.Character, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.queue
	w.queue = nil
	return out, w.deleted
}

// Watch streams a character: the current state first, then every committed
// change in commit order. The channel closes when ctx ends or the character
// is deleted. A change committed while the first read is in flight may be
// delivered twice; none is dropped.
func (o *Orchestrator) Watch(ctx context.Context, characterID string) (<-chan *dnd5e.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument(msgCharacterIDRequired)
	}

	w := newWatcher()
	sub, err := o.engine.SubscribeCharacterChanges(ctx, &engine.SubscribeCharacterChangesInput{
		CharacterID: characterID,
		Handler:     w.handle,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to watch character").WithMeta("character_id", characterID)
	}

	current, err := o.load(ctx, characterID)
	if err != nil {
		o.unsubscribe(ctx, sub.SubscriptionID, characterID)
		return nil, err
	}

	out := make(chan *dnd5e.Character)
	go func() {
		defer close(out)
		defer o.unsubscribe(ctx, sub.SubscriptionID, characterID)

		pending := []*dnd5e.Character{current}
		ended := false
		for {
			if len(pending) == 0 {
				if ended {
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-w.signal:
					var more []*dnd5e.Character
					more, ended = w.take()
					pending = append(pending, more...)
				}
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- pending[0]:
				pending[0] = nil
				pending = pending[1:]
			case <-w.signal:
				var more []*dnd5e.Character
				more, ended = w.take()
				pending = append(pending, more...)
			}
		}
	}()

	slog.DebugContext(ctx, "watching character",
		"character_id", characterID,
		"subscription_id", sub.SubscriptionID)
	return out, nil
}

func (o *Orchestrator) unsubscribe(ctx context.Context, subscriptionID, characterID string) {
	if err := o.engine.Unsubscribe(subscriptionID); err != nil {
		slog.WarnContext(ctx, "failed to stop watching character",
			"character_id", characterID,
			"subscription_id", subscriptionID,
			"error", err)
	}
}
