/*
Copyright 2024 topo-configgen contributors
*/

package topology

// GenerationMode selects the interface catalogue a generation request uses:
// digital mode synthesizes a generic catalogue, physical mode requires each
// L2/L3 device to carry a model tag driving its real interface inventory.
type GenerationMode string

const (
	ModeDigital  GenerationMode = "digital"
	ModePhysical GenerationMode = "physical"
)

// Valid reports whether m is one of the two known generation modes.
func (m GenerationMode) Valid() bool {
	return m == ModeDigital || m == ModePhysical
}
