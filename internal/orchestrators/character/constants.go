package character

// Tracing
const (
	tracerName = "github.com/KirkDiggler/rpg-sheet/internal/orchestrators/character"
	spanPrefix = "character."
)

// Ability score bounds accepted from callers
const (
	minAbilityScore = 1
	maxAbilityScore = 30
)

// Messages
const (
	msgInputRequired       = "input is required"
	msgCharacterIDRequired = "character ID is required"
)
