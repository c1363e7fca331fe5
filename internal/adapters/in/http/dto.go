package http

import (
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/core/domain/model/order"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type DeliveryInfo struct {
	Room     int `json:"room"`
	Building int `json:"building"`
}

type OrderRef struct {
	ID string `json:"id"`
}

type Items map[string]int

type AddPancakes struct {
	Items Items `json:"items"`
}

type OrderSummary struct {
	ID    string `json:"id"`
	Items Items  `json:"items"`
}

type OrderStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Ticket struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Items  Items  `json:"items"`
}

func (i Items) toDomain() order.Items {
	items := make(order.Items, len(i))
	for pancake, qty := range i {
		items[menu.Pancake(pancake)] += qty
	}
	return items
}

func itemsFromDomain(items order.Items) Items {
	out := make(Items, len(items))
	for pancake, qty := range items {
		out[string(pancake)] = qty
	}
	return out
}

func ticketsFromDomain(tickets []order.Ticket) []Ticket {
	out := make([]Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = Ticket{
			ID:     t.Order.ID().String(),
			Status: t.Status.String(),
			Items:  itemsFromDomain(t.Order.Items()),
		}
	}
	return out
}

func idsFromDomain(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
