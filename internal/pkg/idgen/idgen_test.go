package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("note")
	assert.Equal(t, "note_1", g.Generate())
	assert.Equal(t, "note_2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestSequentialGeneratorConcurrent(t *testing.T) {
	g := idgen.NewSequential("eq")
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, loaded := seen.LoadOrStore(g.Generate(), true)
			assert.False(t, loaded)
		}()
	}
	wg.Wait()
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("char").Generate()
	require.True(t, strings.HasPrefix(id, "char_"))
	assert.Len(t, strings.TrimPrefix(id, "char_"), 36)
	assert.NotEqual(t, id, idgen.NewUUID("char").Generate())
}
