package raids

import (
	"errors"
	"fmt"
	"sort"

	"wcl_attendance/internal/attendance"
)

// ErrUnknownSelector indicates a raid-set name that the catalog does not know
var ErrUnknownSelector = errors.New("unknown raid set")

// Catalog is an immutable mapping from zone ids to raid names plus named
// raid sets. Built once at startup; all lookups are pure.
type Catalog struct {
	zones map[attendance.ZoneID]string
	sets  map[string][]attendance.ZoneID
}

// Classic Fresh Anniversary zone ids
const (
	MoltenCore       attendance.ZoneID = 1028
	Onyxia           attendance.ZoneID = 1029
	ZulGurub         attendance.ZoneID = 1030
	RuinsOfAhnQiraj  attendance.ZoneID = 1031
	BlackwingLair    attendance.ZoneID = 1034
	TempleOfAhnQiraj attendance.ZoneID = 1035
)

// NewCatalog builds the default raid catalog
func NewCatalog() *Catalog {
	zones := map[attendance.ZoneID]string{
		MoltenCore:       "Molten Core",
		Onyxia:           "Onyxia",
		ZulGurub:         "Zul'Gurub",
		RuinsOfAhnQiraj:  "Ruins of Ahn'Qiraj",
		BlackwingLair:    "Blackwing Lair",
		TempleOfAhnQiraj: "Temple of Ahn'Qiraj",
	}

	all := make([]attendance.ZoneID, 0, len(zones))
	for id := range zones {
		all = append(all, id)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	sets := map[string][]attendance.ZoneID{
		"40man":         {MoltenCore, BlackwingLair, TempleOfAhnQiraj},
		"40man_no_ony":  {MoltenCore, BlackwingLair, TempleOfAhnQiraj},
		"20man":         {Onyxia, ZulGurub, RuinsOfAhnQiraj},
		"mc_only":       {MoltenCore},
		"bwl_only":      {BlackwingLair},
		"aq40_only":     {TempleOfAhnQiraj},
		"ony_only":      {Onyxia},
		"zg_only":       {ZulGurub},
		"aq20_only":     {RuinsOfAhnQiraj},
		"classic_40man": {MoltenCore, BlackwingLair},
		"all":           all,
	}

	return &Catalog{zones: zones, sets: sets}
}

// Resolve maps a named raid set to its zone ids
func (c *Catalog) Resolve(selector string) ([]attendance.ZoneID, error) {
	zones, ok := c.sets[selector]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, selector)
	}

	// Copy so callers cannot mutate the catalog
	resolved := make([]attendance.ZoneID, len(zones))
	copy(resolved, zones)
	return resolved, nil
}

// ValidateZones checks that every explicit zone id is known to the catalog
func (c *Catalog) ValidateZones(zones []attendance.ZoneID) error {
	var invalid []attendance.ZoneID
	for _, id := range zones {
		if _, ok := c.zones[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("unknown zone ids: %v", invalid)
	}
	return nil
}

// ZoneName returns the display name for a zone id, or a placeholder for
// unknown ids
func (c *Catalog) ZoneName(id attendance.ZoneID) string {
	if name, ok := c.zones[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown-%d", id)
}

// Zones returns all known zone ids in ascending order
func (c *Catalog) Zones() []attendance.ZoneID {
	zones := make([]attendance.ZoneID, 0, len(c.zones))
	for id := range c.zones {
		zones = append(zones, id)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}

// SetNames returns all known raid-set names in alphabetical order
func (c *Catalog) SetNames() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetZones returns the zone ids for a named set without error handling,
// for introspection listings only
func (c *Catalog) SetZones(name string) []attendance.ZoneID {
	return c.sets[name]
}
