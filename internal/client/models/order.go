package models

// OrderStatus is the fulfilment state shown in the order history.
type OrderStatus string

const (
	OrderStatusAll        OrderStatus = "All"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists the filter values in display order.
var OrderStatuses = []OrderStatus{OrderStatusAll, OrderStatusDelivered, OrderStatusProcessing, OrderStatusCancelled}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID          int         `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Date        string      `json:"date"`
	Status      OrderStatus `json:"status"`
	Total       float64     `json:"total"`
	Items       []OrderItem `json:"items"`
}
