package dnd5e

import "strings"

// Weapon properties referenced by rules code
const (
	PropertyFinesse    = "Finesse"
	PropertyLight      = "Light"
	PropertyHeavy      = "Heavy"
	PropertyReach      = "Reach"
	PropertyTwoHanded  = "Two-handed"
	PropertyLoading    = "Loading"
	PropertySpecial    = "Special"
	PropertyAmmunition = "Ammunition"
)

// WeaponType is a catalog weapon. Names containing a comma, such as
// "Crossbow, Light", are stored that way and reformatted for display.
type WeaponType struct {
	Name       string
	Simple     bool
	Ranged     bool
	Damage     string
	DamageType string
	Properties []string
}

// DisplayName renders "Crossbow, Light" as "Crossbow (Light)"
func (w WeaponType) DisplayName() string {
	return weaponDisplayName(w.Name)
}

// HasProperty reports whether the weapon carries property p
func (w WeaponType) HasProperty(p string) bool {
	for _, prop := range w.Properties {
		if strings.EqualFold(prop, p) || strings.HasPrefix(strings.ToLower(prop), strings.ToLower(p)+" ") {
			return true
		}
	}
	return false
}

func weaponDisplayName(name string) string {
	if !strings.Contains(name, ",") {
		return name
	}
	return strings.Replace(name, ", ", " (", 1) + ")"
}

// WeaponCatalog is the full weapon table in catalog order
var WeaponCatalog = []WeaponType{
	// simple melee
	{Name: "Club", Simple: true, Damage: "1d4", DamageType: "bludgeoning", Properties: []string{PropertyLight}},
	{Name: "Dagger", Simple: true, Damage: "1d4", DamageType: "piercing", Properties: []string{PropertyFinesse, PropertyLight, "Thrown (20/60)"}},
	{Name: "Greatclub", Simple: true, Damage: "1d8", DamageType: "bludgeoning", Properties: []string{PropertyTwoHanded}},
	{Name: "Handaxe", Simple: true, Damage: "1d6", DamageType: "slashing", Properties: []string{PropertyLight, "Thrown (20/60)"}},
	{Name: "Javelin", Simple: true, Damage: "1d6", DamageType: "piercing", Properties: []string{"Thrown (30/120)"}},
	{Name: "Light Hammer", Simple: true, Damage: "1d4", DamageType: "bludgeoning", Properties: []string{PropertyLight, "Thrown (20/60)"}},
	{Name: "Mace", Simple: true, Damage: "1d6", DamageType: "bludgeoning"},
	{Name: "Quarterstaff", Simple: true, Damage: "1d6", DamageType: "bludgeoning", Properties: []string{"Versatile (1d8)"}},
	{Name: "Sickle", Simple: true, Damage: "1d4", DamageType: "slashing", Properties: []string{PropertyLight}},
	{Name: "Spear", Simple: true, Damage: "1d6", DamageType: "piercing", Properties: []string{"Thrown (20/60)", "Versatile (1d8)"}},
	// simple ranged
	{Name: "Crossbow, Light", Simple: true, Ranged: true, Damage: "1d8", DamageType: "piercing", Properties: []string{"Ammunition (80/320)", PropertyLoading, PropertyTwoHanded}},
	{Name: "Dart", Simple: true, Ranged: true, Damage: "1d4", DamageType: "piercing", Properties: []string{PropertyFinesse, "Thrown (20/60)"}},
	{Name: "Shortbow", Simple: true, Ranged: true, Damage: "1d6", DamageType: "piercing", Properties: []string{"Ammunition (80/320)", PropertyTwoHanded}},
	{Name: "Sling", Simple: true, Ranged: true, Damage: "1d4", DamageType: "bludgeoning", Properties: []string{"Ammunition (30/120)"}},
	// martial melee
	{Name: "Battleaxe", Damage: "1d8", DamageType: "slashing", Properties: []string{"Versatile (1d10)"}},
	{Name: "Flail", Damage: "1d8", DamageType: "bludgeoning"},
	{Name: "Glaive", Damage: "1d10", DamageType: "slashing", Properties: []string{PropertyHeavy, PropertyReach, PropertyTwoHanded}},
	{Name: "Greataxe", Damage: "1d12", DamageType: "slashing", Properties: []string{PropertyHeavy, PropertyTwoHanded}},
	{Name: "Greatsword", Damage: "2d6", DamageType: "slashing", Properties: []string{PropertyHeavy, PropertyTwoHanded}},
	{Name: "Halberd", Damage: "1d10", DamageType: "slashing", Properties: []string{PropertyHeavy, PropertyReach, PropertyTwoHanded}},
	{Name: "Lance", Damage: "1d12", DamageType: "piercing", Properties: []string{PropertyReach, PropertySpecial}},
	{Name: "Longsword", Damage: "1d8", DamageType: "slashing", Properties: []string{"Versatile (1d10)"}},
	{Name: "Maul", Damage: "2d6", DamageType: "bludgeoning", Properties: []string{PropertyHeavy, PropertyTwoHanded}},
	{Name: "Morningstar", Damage: "1d8", DamageType: "piercing"},
	{Name: "Pike", Damage: "1d10", DamageType: "piercing", Properties: []string{PropertyHeavy, PropertyReach, PropertyTwoHanded}},
	{Name: "Rapier", Damage: "1d8", DamageType: "piercing", Properties: []string{PropertyFinesse}},
	{Name: "Scimitar", Damage: "1d6", DamageType: "slashing", Properties: []string{PropertyFinesse, PropertyLight}},
	{Name: "Shortsword", Damage: "1d6", DamageType: "piercing", Properties: []string{PropertyFinesse, PropertyLight}},
	{Name: "Trident", Damage: "1d6", DamageType: "piercing", Properties: []string{"Thrown (20/60)", "Versatile (1d8)"}},
	{Name: "War Pick", Damage: "1d8", DamageType: "piercing"},
	{Name: "Warhammer", Damage: "1d8", DamageType: "bludgeoning", Properties: []string{"Versatile (1d10)"}},
	{Name: "Whip", Damage: "1d4", DamageType: "slashing", Properties: []string{PropertyFinesse, PropertyReach}},
	// martial ranged
	{Name: "Blowgun", Ranged: true, Damage: "1", DamageType: "piercing", Properties: []string{"Ammunition (25/100)", PropertyLoading}},
	{Name: "Crossbow, Hand", Ranged: true, Damage: "1d6", DamageType: "piercing", Properties: []string{"Ammunition (30/120)", PropertyLight, PropertyLoading}},
	{Name: "Crossbow, Heavy", Ranged: true, Damage: "1d10", DamageType: "piercing", Properties: []string{"Ammunition (100/400)", PropertyHeavy, PropertyLoading, PropertyTwoHanded}},
	{Name: "Longbow", Ranged: true, Damage: "1d8", DamageType: "piercing", Properties: []string{"Ammunition (150/600)", PropertyHeavy, PropertyTwoHanded}},
	{Name: "Net", Ranged: true, Properties: []string{PropertySpecial, "Thrown (5/15)"}},
}

// Catalog weapon names used by the proficiency tables
const (
	WeaponClub          = "Club"
	WeaponDagger        = "Dagger"
	WeaponHandaxe       = "Handaxe"
	WeaponJavelin       = "Javelin"
	WeaponLightHammer   = "Light Hammer"
	WeaponMace          = "Mace"
	WeaponQuarterstaff  = "Quarterstaff"
	WeaponSickle        = "Sickle"
	WeaponSpear         = "Spear"
	WeaponCrossbowLight = "Crossbow, Light"
	WeaponDart          = "Dart"
	WeaponShortbow      = "Shortbow"
	WeaponSling         = "Sling"
	WeaponBattleaxe     = "Battleaxe"
	WeaponLongsword     = "Longsword"
	WeaponRapier        = "Rapier"
	WeaponScimitar      = "Scimitar"
	WeaponShortsword    = "Shortsword"
	WeaponWarhammer     = "Warhammer"
	WeaponCrossbowHand  = "Crossbow, Hand"
	WeaponLongbow       = "Longbow"
	WeaponCrossbowHeavy = "Crossbow, Heavy"
	WeaponGreatsword    = "Greatsword"
)

var weaponsByName = func() map[string]WeaponType {
	m := make(map[string]WeaponType, len(WeaponCatalog))
	for _, w := range WeaponCatalog {
		m[strings.ToLower(w.Name)] = w
	}
	return m
}()

// LookupWeapon finds a catalog weapon by stored or display name, ignoring case
func LookupWeapon(name string) (WeaponType, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if w, ok := weaponsByName[key]; ok {
		return w, true
	}
	// "crossbow (light)" -> "crossbow, light"
	if i := strings.Index(key, " ("); i > 0 && strings.HasSuffix(key, ")") {
		w, ok := weaponsByName[key[:i]+", "+key[i+2:len(key)-1]]
		return w, ok
	}
	return WeaponType{}, false
}

func weaponNames(simpleOnly bool) []string {
	var out []string
	for _, w := range WeaponCatalog {
		if simpleOnly && !w.Simple {
			continue
		}
		out = append(out, w.Name)
	}
	return out
}

// HeldWeapon is a weapon carried by a character, either copied from the
// catalog or entered by hand.
type HeldWeapon struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TypeName    string   `json:"type_name"`
	Simple      bool     `json:"simple"`
	Ranged      bool     `json:"ranged"`
	Damage      string   `json:"damage"`
	DamageType  string   `json:"damage_type"`
	Properties  []string `json:"properties,omitempty"`
	Custom      bool     `json:"custom"`
	Description string   `json:"description,omitempty"`
	Bonus       int      `json:"bonus"`
	Proficient  bool     `json:"proficient"`
}

// NewHeldWeapon copies catalog stats onto a held weapon
func NewHeldWeapon(id, name string, wt WeaponType) HeldWeapon {
	if name == "" {
		name = wt.DisplayName()
	}
	return HeldWeapon{
		ID:         id,
		Name:       name,
		TypeName:   wt.Name,
		Simple:     wt.Simple,
		Ranged:     wt.Ranged,
		Damage:     wt.Damage,
		DamageType: wt.DamageType,
		Properties: append([]string(nil), wt.Properties...),
	}
}

func (w HeldWeapon) finesse() bool {
	for _, p := range w.Properties {
		if strings.EqualFold(p, PropertyFinesse) {
			return true
		}
	}
	return false
}
