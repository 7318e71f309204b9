package dnd5e

// AbilityType names one of the six abilities
type AbilityType string

// Ability constants
const (
	AbilityStrength     AbilityType = "str"
	AbilityDexterity    AbilityType = "dex"
	AbilityConstitution AbilityType = "con"
	AbilityIntelligence AbilityType = "int"
	AbilityWisdom       AbilityType = "wis"
	AbilityCharisma     AbilityType = "cha"
)

// AbilityTypes lists the abilities in sheet order
var AbilityTypes = []AbilityType{
	AbilityStrength, AbilityDexterity, AbilityConstitution,
	AbilityIntelligence, AbilityWisdom, AbilityCharisma,
}

// Valid reports whether a is one of the six abilities
func (a AbilityType) Valid() bool {
	switch a {
	case AbilityStrength, AbilityDexterity, AbilityConstitution,
		AbilityIntelligence, AbilityWisdom, AbilityCharisma:
		return true
	}
	return false
}

// UnmarshalText rejects unknown ability tags
func (a *AbilityType) UnmarshalText(text []byte) error {
	v, err := decodeTag[AbilityType]("ability", text)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// DisplayName returns the full ability name
func (a AbilityType) DisplayName() string {
	switch a {
	case AbilityStrength:
		return "Strength"
	case AbilityDexterity:
		return "Dexterity"
	case AbilityConstitution:
		return "Constitution"
	case AbilityIntelligence:
		return "Intelligence"
	case AbilityWisdom:
		return "Wisdom"
	case AbilityCharisma:
		return "Charisma"
	}
	return string(a)
}

// Ability is a raw score plus its saving throw proficiency flag. Scores are
// not range checked.
type Ability struct {
	Score int  `json:"score"`
	Save  bool `json:"save"`
}

// Modifier is floor((score - 10) / 2)
func (a Ability) Modifier() int {
	d := a.Score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// AbilityScores holds the six abilities of a character
type AbilityScores struct {
	Strength     Ability `json:"strength"`
	Dexterity    Ability `json:"dexterity"`
	Constitution Ability `json:"constitution"`
	Intelligence Ability `json:"intelligence"`
	Wisdom       Ability `json:"wisdom"`
	Charisma     Ability `json:"charisma"`
}

// DefaultAbilityScores returns every ability at score 10 with no save
func DefaultAbilityScores() AbilityScores {
	base := Ability{Score: 10}
	return AbilityScores{
		Strength:     base,
		Dexterity:    base,
		Constitution: base,
		Intelligence: base,
		Wisdom:       base,
		Charisma:     base,
	}
}

// Get returns the ability for t
func (s AbilityScores) Get(t AbilityType) Ability {
	if p := s.ref(t); p != nil {
		return *p
	}
	return Ability{}
}

// SetScore replaces the score of t, keeping the save flag
func (s *AbilityScores) SetScore(t AbilityType, score int) {
	if p := s.ref(t); p != nil {
		p.Score = score
	}
}

// SetSave sets the saving throw flag of t
func (s *AbilityScores) SetSave(t AbilityType, save bool) {
	if p := s.ref(t); p != nil {
		p.Save = save
	}
}

func (s *AbilityScores) ref(t AbilityType) *Ability {
	switch t {
	case AbilityStrength:
		return &s.Strength
	case AbilityDexterity:
		return &s.Dexterity
	case AbilityConstitution:
		return &s.Constitution
	case AbilityIntelligence:
		return &s.Intelligence
	case AbilityWisdom:
		return &s.Wisdom
	case AbilityCharisma:
		return &s.Charisma
	}
	return nil
}
