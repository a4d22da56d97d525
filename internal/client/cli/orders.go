package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/services"
)

// Orders prints the order history filtered by status. An empty status shows
// every order.
func (a *App) Orders(ctx context.Context, status string) error {
	ok, err := a.open(ctx, services.RouteOrders)
	if err != nil || !ok {
		return err
	}

	orders := a.orders.List(models.OrderStatus(status))
	if len(orders) == 0 {
		a.printf("No orders found.\n")
		if !knownStatus(status) {
			a.printf("Known statuses: %s.\n", statusList())
		}
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t$%.2f\n", o.OrderNumber, o.Date, o.Status, items, o.Total)
	}
	return w.Flush()
}

func knownStatus(status string) bool {
	if status == "" {
		return true
	}
	for _, s := range models.OrderStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

func statusNames() []string {
	names := make([]string, len(models.OrderStatuses))
	for i, s := range models.OrderStatuses {
		names[i] = string(s)
	}
	return names
}

func statusList() string {
	return strings.Join(statusNames(), ", ")
}
