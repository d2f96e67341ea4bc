package catalog

import "fmt"

// Lookup tables for the legacy catalog era, in which colors, sizes and denier
// were inline string enums on the product document. The ids double as the
// facet ids of the current normalized era, so both eras resolve to the same
// canonical values.

var colorByID = map[string]Color{
	"crna":        {ID: "crna", Name: "Crna", Hex: "#000000"},
	"bela":        {ID: "bela", Name: "Bela", Hex: "#FFFFFF"},
	"braon":       {ID: "braon", Name: "Braon", Hex: "#8B4513"},
	"siva":        {ID: "siva", Name: "Siva", Hex: "#808080"},
	"bez":         {ID: "bez", Name: "Bež", Hex: "#F5F5DC"},
	"crvena":      {ID: "crvena", Name: "Crvena", Hex: "#DC2626"},
	"plava":       {ID: "plava", Name: "Plava", Hex: "#3B82F6"},
	"roze":        {ID: "roze", Name: "Roze", Hex: "#EC4899"},
	"ljubicasta":  {ID: "ljubicasta", Name: "Ljubičasta", Hex: "#A855F7"},
	"zelena":      {ID: "zelena", Name: "Zelena", Hex: "#22C55E"},
	"narandzasta": {ID: "narandzasta", Name: "Narandžasta", Hex: "#F97316"},
	"zuta":        {ID: "zuta", Name: "Žuta", Hex: "#EAB308"},
	"bordo":       {ID: "bordo", Name: "Bordo", Hex: "#7F1D1D"},
	"teget":       {ID: "teget", Name: "Teget", Hex: "#1E3A8A"},
	"krem":        {ID: "krem", Name: "Krem", Hex: "#FFFDD0"},
}

var sizeByID = map[string]Size{
	"xs":       {ID: "xs", Name: "XS"},
	"s":        {ID: "s", Name: "S"},
	"m":        {ID: "m", Name: "M"},
	"l":        {ID: "l", Name: "L"},
	"xl":       {ID: "xl", Name: "XL"},
	"xxl":      {ID: "xxl", Name: "XXL"},
	"one-size": {ID: "one-size", Name: "One Size"},
	"34-36":    {ID: "34-36", Name: "34-36"},
	"36-38":    {ID: "36-38", Name: "36-38"},
	"38-40":    {ID: "38-40", Name: "38-40"},
	"40-42":    {ID: "40-42", Name: "40-42"},
	"42-44":    {ID: "42-44", Name: "42-44"},
}

// DenierIDs lists the thickness options the storefront filter offers.
var DenierIDs = []string{"8", "10", "15", "20", "30", "40", "50", "60", "70", "80", "100", "120"}

// ColorByID resolves a legacy color key to its canonical facet.
func ColorByID(id string) (Color, bool) {
	c, ok := colorByID[id]
	return c, ok
}

// SizeByID resolves a legacy size key to its canonical facet.
func SizeByID(id string) (Size, bool) {
	s, ok := sizeByID[id]
	return s, ok
}

// ResolveColors maps legacy color keys to canonical facets, dropping unknown keys.
func ResolveColors(ids []string) []Color {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Color, 0, len(ids))
	for _, id := range ids {
		if c, ok := colorByID[id]; ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ResolveSizes maps legacy size keys to canonical facets, dropping unknown keys.
func ResolveSizes(ids []string) []Size {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Size, 0, len(ids))
	for _, id := range ids {
		if s, ok := sizeByID[id]; ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ResolveDenier maps a legacy denier value ("20") to its canonical facet.
func ResolveDenier(id string) *Denier {
	if id == "" {
		return nil
	}
	return &Denier{ID: id, Label: fmt.Sprintf("%s Den", id)}
}

// AllColors returns the filterable color facets in a stable order.
func AllColors() []Color {
	out := make([]Color, 0, len(colorByID))
	for _, id := range []string{
		"crna", "bela", "braon", "siva", "bez", "crvena", "plava", "roze",
		"ljubicasta", "zelena", "narandzasta", "zuta", "bordo", "teget", "krem",
	} {
		out = append(out, colorByID[id])
	}
	return out
}

// AllSizes returns the filterable size facets in a stable order.
func AllSizes() []Size {
	out := make([]Size, 0, len(sizeByID))
	for _, id := range []string{
		"xs", "s", "m", "l", "xl", "xxl", "one-size",
		"34-36", "36-38", "38-40", "40-42", "42-44",
	} {
		out = append(out, sizeByID[id])
	}
	return out
}

// AllDeniers returns the filterable denier facets in a stable order.
func AllDeniers() []Denier {
	out := make([]Denier, 0, len(DenierIDs))
	for _, id := range DenierIDs {
		out = append(out, *ResolveDenier(id))
	}
	return out
}
