package model

import "github.com/google/uuid"

// ContainerPreset represents a reusable container definition.
type ContainerPreset struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Dimensions Dimensions `json:"dimensions"`
	Price      float64    `json:"price"` // Cost per container (0 = not set)
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, w, h, d, price float64) ContainerPreset {
	return ContainerPreset{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Dimensions: Dims(w, h, d),
		Price:      price,
	}
}

// Inventory holds the user's saved container presets.
type Inventory struct {
	Containers []ContainerPreset `json:"containers"`
}

// DefaultInventory returns an inventory populated with common containers
// (inner dimensions in cm).
func DefaultInventory() Inventory {
	return Inventory{
		Containers: []ContainerPreset{
			NewContainerPreset("EUR pallet load (120x100x80)", 120, 100, 80, 0),
			NewContainerPreset("US pallet load (122x102x80)", 122, 102, 80, 0),
			NewContainerPreset("20ft ISO container", 589, 239, 235, 0),
			NewContainerPreset("40ft ISO container", 1203, 239, 235, 0),
			NewContainerPreset("Moving box large (60x45x45)", 60, 45, 45, 0),
			NewContainerPreset("Moving box small (40x30x30)", 40, 30, 30, 0),
		},
	}
}

// FindContainerByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindContainerByID(id string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindContainerByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindContainerByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].Name == name {
			return &inv.Containers[i]
		}
	}
	return nil
}

// ContainerNames returns the preset names in order.
func (inv *Inventory) ContainerNames() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}
