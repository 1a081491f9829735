package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPreparing OrderStatus = "preparando"
	StatusDelivered OrderStatus = "entregado"
	StatusCancelled OrderStatus = "cancelado"
)

var DishCategories = []string{"entrada", "plato fuerte", "postre", "bebida"}

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"             json:"id"`
	Name         string    `gorm:"not null"               json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	Blocked      bool      `gorm:"not null"               json:"blocked"`
	Admin        bool      `gorm:"not null"               json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `gorm:"index"                  json:"updated_at"`
}

type Modifier struct {
	ID        uuid.UUID       `gorm:"primaryKey"               json:"id"`
	Name      string          `gorm:"not null"                 json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Available bool            `gorm:"not null"                 json:"available"`
	CreatedAt time.Time       `gorm:"index"                    json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Dish struct {
	ID        uuid.UUID       `gorm:"primaryKey"                  json:"id"`
	Name      string          `gorm:"not null"                    json:"name"`
	Notes     string          `json:"notes"`
	Category  string          `gorm:"index;not null"              json:"category"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Available bool            `gorm:"not null"                    json:"available"`
	Image     string          `json:"image"`
	Modifiers []Modifier      `gorm:"many2many:dish_modifiers;"   json:"modifiers"`
	CreatedAt time.Time       `gorm:"index"                       json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Address struct {
	Line1 string `gorm:"column:line_1" json:"line_1"`
	Line2 string `gorm:"column:line_2" json:"line_2"`
}

type Payment struct {
	PayOnDelivery bool   `json:"pay_on_delivery"`
	CardNumber    string `json:"card_number,omitempty"`
	CardExpDate   string `json:"card_exp_date,omitempty"`
}

type Order struct {
	ID             uuid.UUID                     `gorm:"primaryKey"                                 json:"id"`
	User           UserSnapshot                  `gorm:"embedded;embeddedPrefix:user_"              json:"user"`
	Items          datatypes.JSONSlice[OrderItem] `gorm:"not null"                                  json:"items"`
	TotalDishes    decimal.Decimal               `gorm:"type:numeric(12,2);not null"                json:"total_dishes"`
	TotalModifiers decimal.Decimal               `gorm:"type:numeric(12,2);not null"                json:"total_modifiers"`
	Subtotal       decimal.Decimal               `gorm:"type:numeric(12,2);not null"                json:"subtotal"`
	Tip            decimal.Decimal               `gorm:"type:numeric(12,2);not null"                json:"tip"`
	Total          decimal.Decimal               `gorm:"type:numeric(12,2);not null"                json:"total"`
	Address        Address                       `gorm:"embedded;embeddedPrefix:address_"           json:"address"`
	Payment        Payment                       `gorm:"embedded;embeddedPrefix:payment_"           json:"payment"`
	Status         OrderStatus                   `gorm:"index;not null"                             json:"status"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `gorm:"index"                                      json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (m *Modifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// All lists every table owned by the service, in migration order.
func All() []any {
	return []any{&User{}, &Modifier{}, &Dish{}, &Order{}}
}
