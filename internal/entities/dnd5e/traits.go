package dnd5e

// RacialTraits lists trait names for the character's race and subrace
func (c *Character) RacialTraits() []string {
	return RacialTraits(c.Race, c.Subrace)
}

// RacialTraits lists trait names for a race and subrace
func RacialTraits(race Race, subrace Subrace) []string {
	var traits []string
	switch race {
	case RaceHuman:
		traits = []string{"Ability Score Increase", "Extra Language"}
	case RaceDwarf:
		traits = []string{"Darkvision (60 ft)", "Dwarven Resilience", "Stonecunning"}
		switch subrace {
		case SubraceHillDwarf:
			traits = append(traits, "Dwarven Toughness")
		case SubraceMountainDwarf:
			traits = append(traits, "Dwarven Armor Training")
		}
	case RaceElf:
		traits = []string{"Darkvision (60 ft)", "Fey Ancestry", "Trance"}
		switch subrace {
		case SubraceHighElf:
			traits = append(traits, "Cantrip", "Extra Language")
		case SubraceWoodElf:
			traits = append(traits, "Mask of the Wild")
		case SubraceDarkElf:
			// superior darkvision replaces the base trait in place
			traits[0] = "Darkvision (120 ft)"
			traits = append(traits, "Sunlight Sensitivity", "Drow Magic (3rd & 5th level)")
		}
	case RaceHalfling:
		traits = []string{"Lucky", "Brave", "Halfling Nimbleness"}
		switch subrace {
		case SubraceLightfootHalfling:
			traits = append(traits, "Naturally Stealthy")
		case SubraceStoutHalfling:
			traits = append(traits, "Stout Resilience")
		}
	case RaceDragonborn:
		traits = []string{"Draconic Ancestry", "Breath Weapon", "Damage Resistance"}
	case RaceGnome:
		traits = []string{"Darkvision (60 ft)", "Gnome Cunning"}
		switch subrace {
		case SubraceForestGnome:
			traits = append(traits, "Natural Illusionist", "Speak with Small Beasts")
		case SubraceRockGnome:
			traits = append(traits, "Artificer's Lore", "Tinker")
		}
	case RaceHalfElf:
		traits = []string{"Darkvision (60 ft)", "Fey Ancestry"}
	case RaceHalfOrc:
		traits = []string{"Darkvision (60 ft)", "Relentless Endurance", "Savage Attacks"}
	case RaceTiefling:
		traits = []string{"Darkvision (60 ft)", "Hellish Resistance", "Infernal Legacy (3rd & 5th level)"}
	}
	return traits
}
