package services

import "github.com/dmitrijs2005/gophprofile/internal/client/models"

// catalog is the fixed order history shown to every account.
var catalog = []models.Order{
	{
		ID: 1, OrderNumber: "ORD-2024-001", Date: "2024-03-15", Status: models.OrderStatusDelivered, Total: 299.99,
		Items: []models.OrderItem{{Name: "Product 1", Quantity: 2, Price: 99.99}, {Name: "Product 2", Quantity: 1, Price: 100.01}},
	},
	{
		ID: 2, OrderNumber: "ORD-2024-002", Date: "2024-03-10", Status: models.OrderStatusProcessing, Total: 149.99,
		Items: []models.OrderItem{{Name: "Product 3", Quantity: 1, Price: 149.99}},
	},
	{
		ID: 3, OrderNumber: "ORD-2024-003", Date: "2024-03-08", Status: models.OrderStatusCancelled, Total: 199.99,
		Items: []models.OrderItem{{Name: "Product 4", Quantity: 1, Price: 199.99}},
	},
	{
		ID: 4, OrderNumber: "ORD-2024-004", Date: "2024-03-05", Status: models.OrderStatusDelivered, Total: 449.98,
		Items: []models.OrderItem{{Name: "Product 5", Quantity: 2, Price: 224.99}},
	},
	{
		ID: 5, OrderNumber: "ORD-2024-005", Date: "2024-03-01", Status: models.OrderStatusProcessing, Total: 79.99,
		Items: []models.OrderItem{{Name: "Product 6", Quantity: 1, Price: 79.99}},
	},
}

// OrderService serves the static order history.
type OrderService struct{}

func NewOrderService() *OrderService {
	return &OrderService{}
}

// List returns the orders with the given status in catalog order. An empty
// status or OrderStatusAll returns everything. The result is a copy.
func (s *OrderService) List(status models.OrderStatus) []models.Order {
	out := make([]models.Order, 0, len(catalog))
	for _, o := range catalog {
		if status != "" && status != models.OrderStatusAll && o.Status != status {
			continue
		}
		o.Items = append([]models.OrderItem(nil), o.Items...)
		out = append(out, o)
	}
	return out
}
