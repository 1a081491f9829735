package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshots are copied into an order when it is priced. They never point back
// at the live catalog, so later edits to a dish or user leave old orders intact.

type UserSnapshot struct {
	ID   uuid.UUID `gorm:"column:id;index" json:"id"`
	Name string    `gorm:"column:name"     json:"name"`
}

type DishSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type ModifierSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderItem struct {
	Dish      DishSnapshot       `json:"dish"`
	Modifiers []ModifierSnapshot `json:"modifiers"`
}

func SnapshotUser(u *User) UserSnapshot {
	return UserSnapshot{ID: u.ID, Name: u.Name}
}

func SnapshotDish(d *Dish) DishSnapshot {
	return DishSnapshot{ID: d.ID, Name: d.Name, Price: d.Price, Image: d.Image}
}

func SnapshotModifier(m *Modifier) ModifierSnapshot {
	return ModifierSnapshot{ID: m.ID, Name: m.Name, Price: m.Price}
}
