package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

var proficiencyLabels = map[dnd5e.ProficiencyType]string{
	dnd5e.ProficiencyArmor:    "Armor",
	dnd5e.ProficiencyWeapon:   "Weapons",
	dnd5e.ProficiencyTool:     "Tools",
	dnd5e.ProficiencyLanguage: "Languages",
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCharacter renders the full sheet, or the stored record with --json
func printCharacter(c *dnd5e.Character) error {
	if jsonOutput {
		return emit(c)
	}
	writeSheet(os.Stdout, c)
	return nil
}

func printList(chars []*dnd5e.Character) error {
	if jsonOutput {
		return emit(chars)
	}
	if len(chars) == 0 {
		fmt.Println("No characters yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tHP\tUPDATED")
	for _, c := range chars {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			c.ID, c.Name, c.Description(), c.HP, c.MaxHP(), c.Updated.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func writeSheet(out io.Writer, c *dnd5e.Character) {
	d := c.DerivedStats()

	fmt.Fprintf(out, "%s (%s)\n", c.Name, c.ID)
	fmt.Fprintf(out, "%s, %s, %s\n", d.Description, c.Background.DisplayName(), c.Alignment.DisplayName())
	for _, j := range c.Multiclasses {
		fmt.Fprintf(out, "  + %s %d\n", j.Class.DisplayName(), j.Level)
	}
	fmt.Fprintf(out, "Experience %d", c.Experience)
	if d.HasToLevelUp {
		fmt.Fprintf(out, " (ready for level %d)", d.ExpLevel)
	} else if d.ExpToNextLevel > 0 {
		fmt.Fprintf(out, " (%d to next level)", d.ExpToNextLevel)
	}
	fmt.Fprintln(out)
	if c.HasInspiration {
		fmt.Fprintln(out, "Inspired")
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "HP\t%d/%d", c.HP, d.MaxHP)
	if c.TempHP > 0 {
		fmt.Fprintf(w, " (+%d temp)", c.TempHP)
	}
	fmt.Fprintf(w, "\tHit dice\t%d/%d d%d\n", c.Job.Dice, c.Job.Level, c.Job.HitDie())
	fmt.Fprintf(w, "AC\t%d\tInitiative\t%s\n", d.ArmorClass, signed(d.Initiative))
	fmt.Fprintf(w, "Speed\t%d ft\tProficiency\t%s\n", d.Speed, signed(d.ProficiencyBonus))
	fmt.Fprintf(w, "Passive perception\t%d\tAttacks\t%d\n", d.PassivePerception, d.AttacksPerAction)
	if c.HP == 0 || c.DeathSaves != (dnd5e.DeathSaves{}) {
		fmt.Fprintf(w, "Death saves\t%d success, %d failure\t\t\n", c.DeathSaves.Successes, c.DeathSaves.Failures)
	}
	_ = w.Flush() // nolint:errcheck // stdout

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ABILITY\tSCORE\tMOD\tSAVE")
	for _, a := range dnd5e.AbilityTypes {
		ability := c.Abilities.Get(a)
		mark := ""
		if ability.Save {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s%s\n", a.DisplayName(), ability.Score,
			signed(d.AbilityModifiers[a]), signed(d.SavingThrows[a]), mark)
	}
	_ = w.Flush() // nolint:errcheck // stdout

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKILL\tMOD\tTIER")
	for _, s := range c.Skills {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Type.DisplayName(), signed(d.SkillModifiers[s.Type]), tierLabel(s.Tier))
	}
	_ = w.Flush() // nolint:errcheck // stdout

	fmt.Fprintln(out)
	for _, t := range dnd5e.ProficiencyTypes {
		if names := d.Proficiencies[t]; len(names) > 0 {
			fmt.Fprintf(out, "%s: %s\n", proficiencyLabels[t], strings.Join(names, ", "))
		}
	}
	if len(d.RacialTraits) > 0 {
		fmt.Fprintf(out, "Racial traits: %s\n", strings.Join(d.RacialTraits, ", "))
	}
	if len(d.ClassFeatures) > 0 {
		fmt.Fprintf(out, "Class features: %s\n", strings.Join(d.ClassFeatures, ", "))
	}
	if d.BackgroundFeature != "" {
		fmt.Fprintf(out, "Background feature: %s\n", d.BackgroundFeature)
	}

	coins := c.Coins
	fmt.Fprintf(out, "\nCoins: %d cp, %d sp, %d ep, %d gp, %d pp\n",
		coins.Copper, coins.Silver, coins.Electrum, coins.Gold, coins.Platinum)

	if len(c.Weapons) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WEAPON\tATTACK\tDAMAGE\tID")
		for _, wp := range c.Weapons {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n",
				wp.Name, signed(d.WeaponAttacks[wp.ID]), wp.Damage, wp.DamageType, wp.ID)
		}
		_ = w.Flush() // nolint:errcheck // stdout
	}

	if len(c.Equipment) > 0 {
		fmt.Fprintln(out, "\nEquipment:")
		for _, e := range c.Equipment {
			fmt.Fprintf(out, "  %dx %s\n", e.Quantity, e.Name)
		}
	}

	if c.Preferences.ShowSpells || len(c.Spells) > 0 {
		writeSpells(out, c)
	}

	if c.Preferences.ShowNotes {
		var active []dnd5e.Note
		for _, n := range c.Notes {
			if n.Archived == nil {
				active = append(active, n)
			}
		}
		if len(active) > 0 {
			fmt.Fprintln(out, "\nNotes:")
			for _, n := range active {
				fmt.Fprintf(out, "  [%s] %s\n", n.ID, strings.ReplaceAll(n.Text, "\n", "\n    "))
			}
		}
	}
}

func writeSpells(out io.Writer, c *dnd5e.Character) {
	var slots []string
	for i, s := range c.SpellSlots {
		if s.Total > 0 {
			slots = append(slots, fmt.Sprintf("L%d %d/%d", i+1, s.Total-s.Used, s.Total))
		}
	}
	if len(slots) > 0 {
		fmt.Fprintf(out, "\nSpell slots: %s\n", strings.Join(slots, ", "))
	}
	if len(c.Spells) == 0 {
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SPELL\tLEVEL\tSCHOOL\tRANGE\tPREPARED")
	for _, s := range c.Spells {
		prepared := ""
		if s.Prepared {
			prepared = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", s.Name, s.Level, s.School, s.Range, prepared)
	}
	_ = w.Flush() // nolint:errcheck // stdout
}

func tierLabel(t dnd5e.SkillTier) string {
	switch t {
	case dnd5e.SkillTierFull:
		return "proficient"
	case dnd5e.SkillTierExpert:
		return "expert"
	default:
		return ""
	}
}
