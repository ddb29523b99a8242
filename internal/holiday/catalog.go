package holiday

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var defaultCatalogTOML []byte

// DefaultCatalog returns the built-in catalog, parsed once.
var DefaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(defaultCatalogTOML)
})

// DateSpec is the serialized form of a date rule.
type DateSpec struct {
	Month              int  `toml:"month" json:"month"`
	Day                int  `toml:"day" json:"day"`
	Leap               bool `toml:"leap,omitempty" json:"leap,omitempty"`
	ShortMonthFallback bool `toml:"short_month_fallback,omitempty" json:"short_month_fallback,omitempty"`
}

// Record is the serialized form of a Definition, shared by the TOML seed,
// the JSON API and the database. Exactly one of Gregorian and Lunar is set.
type Record struct {
	ID          int       `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description" json:"description"`
	ColorClass  string    `toml:"color_class" json:"color_class"`
	Public      bool      `toml:"public" json:"is_public_holiday"`
	Gregorian   *DateSpec `toml:"gregorian,omitempty" json:"gregorian,omitempty"`
	Lunar       *DateSpec `toml:"lunar,omitempty" json:"lunar,omitempty"`
}

// Definition converts the record, rejecting records with both or neither
// date kind.
func (r Record) Definition() (Definition, error) {
	def := Definition{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		ColorClass:      r.ColorClass,
		IsPublicHoliday: r.Public,
	}
	switch {
	case r.Gregorian != nil && r.Lunar != nil:
		return Definition{}, fmt.Errorf("holiday %d: both gregorian and lunar dates set", r.ID)
	case r.Gregorian != nil:
		if r.Gregorian.Leap || r.Gregorian.ShortMonthFallback {
			return Definition{}, fmt.Errorf("holiday %d: lunar options on a gregorian date", r.ID)
		}
		def.Rule = GregorianFixed{Month: time.Month(r.Gregorian.Month), Day: r.Gregorian.Day}
	case r.Lunar != nil:
		def.Rule = LunisolarRecurring{
			Month:              r.Lunar.Month,
			Day:                r.Lunar.Day,
			IsLeapMonth:        r.Lunar.Leap,
			ShortMonthFallback: r.Lunar.ShortMonthFallback,
		}
	default:
		return Definition{}, fmt.Errorf("holiday %d: no date set", r.ID)
	}
	return def, def.Validate()
}

// ToRecord converts a definition to its serialized form.
func (d *Definition) ToRecord() Record {
	r := Record{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ColorClass:  d.ColorClass,
		Public:      d.IsPublicHoliday,
	}
	switch rule := d.Rule.(type) {
	case GregorianFixed:
		r.Gregorian = &DateSpec{Month: int(rule.Month), Day: rule.Day}
	case LunisolarRecurring:
		r.Lunar = &DateSpec{
			Month:              rule.Month,
			Day:                rule.Day,
			Leap:               rule.IsLeapMonth,
			ShortMonthFallback: rule.ShortMonthFallback,
		}
	}
	return r
}

// MarshalJSON renders the definition as a Record.
func (d *Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToRecord())
}

// Catalog is an immutable, ordered set of definitions. It is safe to share
// across goroutines.
type Catalog struct {
	defs []*Definition
	byID map[int]*Definition
}

// NewCatalog validates the definitions and builds a catalog. IDs must be
// unique.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make([]*Definition, 0, len(defs)),
		byID: make(map[int]*Definition, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("holiday %d: duplicate id", d.ID)
		}
		c.defs = append(c.defs, &d)
		c.byID[d.ID] = &d
	}
	return c, nil
}

// ParseCatalog reads a TOML catalog made of [[holiday]] tables.
func ParseCatalog(data []byte) (*Catalog, error) {
	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return CatalogFromRecords(records)
}

// ParseRecords reads the [[holiday]] tables of a TOML catalog.
func ParseRecords(data []byte) ([]Record, error) {
	var file struct {
		Holidays []Record `toml:"holiday"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse holiday catalog: %w", err)
	}
	return file.Holidays, nil
}

// CatalogFromRecords converts and validates records into a catalog.
func CatalogFromRecords(records []Record) (*Catalog, error) {
	defs := make([]Definition, 0, len(records))
	for _, r := range records {
		d, err := r.Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return NewCatalog(defs)
}

// All returns the definitions in catalog order.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Records returns the serialized form of every definition.
func (c *Catalog) Records() []Record {
	out := make([]Record, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d.ToRecord())
	}
	return out
}

// ByID looks up a definition.
func (c *Catalog) ByID(id int) (*Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}
