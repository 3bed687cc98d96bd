// Package item defines the inventory value objects: generic items, slotted
// equipment, and charged consumables.
package item

// Type discriminates item payloads
type Type string

const (
	TypeGeneric    Type = "generic"
	TypeEquipment  Type = "equipment"
	TypeConsumable Type = "consumable"
)

// Slot is where a piece of equipment sits on a character
type Slot string

const (
	SlotHead      Slot = "head"
	SlotChest     Slot = "chest"
	SlotMainHand  Slot = "main_hand"
	SlotOffHand   Slot = "off_hand"
	SlotTwoHand   Slot = "two_hand"
	SlotAccessory Slot = "accessory"
)

// Item is the common payload shared by every inventory entry
type Item struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Rarity string   `json:"rarity,omitempty"`
	Value  int      `json:"value,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Type   Type     `json:"item_type"`
}

// Requirements gates who can equip a piece of equipment. Zero values mean
// no requirement of that kind.
type Requirements struct {
	Level     int            `json:"level,omitempty"`
	Abilities map[string]int `json:"abilities,omitempty"`
	Classes   []string       `json:"classes,omitempty"`
	ClassTags []string       `json:"class_tags,omitempty"`
}

// Empty reports whether the requirements gate nothing
func (r Requirements) Empty() bool {
	return r.Level == 0 && len(r.Abilities) == 0 && len(r.Classes) == 0 && len(r.ClassTags) == 0
}

// Equipment is a wearable or wieldable item contributing modifiers while
// equipped
type Equipment struct {
	Item
	Slot         Slot           `json:"slot"`
	Modifiers    map[string]int `json:"modifiers,omitempty"`
	Requirements Requirements   `json:"requirements,omitempty"`
	TwoHanded    bool           `json:"two_handed,omitempty"`
	OffHandOnly  bool           `json:"off_hand_only,omitempty"`
}

// Contributes returns the equipment's bonus map
func (e *Equipment) Contributes() map[string]int {
	return e.Modifiers
}

// Consumable is a charged item resolved through its effect id when used
type Consumable struct {
	Item
	EffectID       string `json:"effect_id"`
	Charges        int    `json:"charges"`
	UsableInCombat bool   `json:"usable_in_combat"`
	ActionCost     int    `json:"action_cost"`
}

// NewEquipment creates equipment with the type discriminator set
func NewEquipment(id, name string, slot Slot) *Equipment {
	return &Equipment{
		Item:      Item{ID: id, Name: name, Rarity: "common", Type: TypeEquipment},
		Slot:      slot,
		Modifiers: map[string]int{},
	}
}

// NewConsumable creates a combat-usable consumable with the type
// discriminator set
func NewConsumable(id, name, effectID string, charges int) *Consumable {
	return &Consumable{
		Item:           Item{ID: id, Name: name, Rarity: "common", Type: TypeConsumable},
		EffectID:       effectID,
		Charges:        charges,
		UsableInCombat: true,
		ActionCost:     1,
	}
}
