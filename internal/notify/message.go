package notify

import (
	"context"

	"github.com/Skotchmaster/food_order/internal/models"
)

type Item struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Message is a templated email. Title, Body and Items become the template's
// title, message and items variables.
type Message struct {
	To     string
	ToName string
	Title  string
	Body   string
	Items  []Item
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const (
	orderConfirmationBody = "Te confirmamos que hemos recibido tu orden y la estamos preparando. Aquí el resumen de tu pedido:"
	welcomeBody           = "¡Bienvenido a Taco Feliz! Tu cuenta está lista para usarse. A partir de ahora puedes pedir tu comida favorita desde la app."
)

func OrderConfirmation(user *models.User, order *models.Order) Message {
	items := make([]Item, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, Item{Name: it.Dish.Name, Price: "$" + it.Dish.Price.String()})
	}
	return Message{
		To:     user.Email,
		ToName: user.Name,
		Title:  user.Name + " tu orden se está preparando",
		Body:   orderConfirmationBody,
		Items:  items,
	}
}

func Welcome(user *models.User) Message {
	return Message{
		To:     user.Email,
		ToName: user.Name,
		Title:  user.Name,
		Body:   welcomeBody,
	}
}
