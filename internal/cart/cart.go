// Package cart implements the line-item semantics the storefront cart follows.
// The browser keeps its own copy in local storage; this package is the
// server's authoritative model of the same rules, used to normalize and
// validate carts submitted at checkout.
package cart

import (
	"github.com/shopspring/decimal"

	"provideo-rentals/internal/model"
)

type Cart struct {
	Items []model.LineItem
}

// AddPackage appends a quantity-1 snapshot of the package. Adding a package
// that is already in the cart is a no-op.
func (c *Cart) AddPackage(p model.Package) {
	if c.find(p.ID) != nil {
		return
	}
	c.Items = append(c.Items, model.LineItem{
		Type:        model.ItemTypePackage,
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    1,
		KeyFeatures: p.KeyFeatures,
	})
}

// AddAddOn appends a quantity-1 snapshot of the add-on, or increments the
// quantity if it is already in the cart.
func (c *Cart) AddAddOn(a model.AddOn) {
	if item := c.find(a.ID); item != nil {
		item.Quantity++
		return
	}
	c.Items = append(c.Items, model.LineItem{
		Type:     model.ItemTypeAddon,
		ID:       a.ID,
		Name:     a.Name,
		Price:    a.Price,
		Quantity: 1,
	})
}

// RemoveItem deletes the line item with the given id regardless of type.
func (c *Cart) RemoveItem(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line item with the given id.
// A quantity below 1 removes the item.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(id)
		return
	}
	if item := c.find(id); item != nil {
		item.Quantity = quantity
	}
}

// Total is the full (pre-deposit) cart value in major currency units.
func (c *Cart) Total() float64 {
	return Total(c.Items)
}

func (c *Cart) find(id string) *model.LineItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Total computes Σ price×quantity over an item list without float
// accumulation error.
func Total(items []model.LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Float64()
	return f
}
