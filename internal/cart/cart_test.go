package cart

import (
	"testing"

	"provideo-rentals/internal/model"
)

var (
	webinarPkg = model.Package{ID: "webinar", Name: "Webinar Package", Price: 3000}
	streamAdd  = model.AddOn{ID: "stream", Name: "Live Stream", Value: "live-stream", Price: 750}
)

func TestAddPackageTwiceIsNoOp(t *testing.T) {
	var c Cart
	c.AddPackage(webinarPkg)
	c.AddPackage(webinarPkg)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", c.Items[0].Quantity)
	}
}

func TestAddAddOnTwiceIncrementsQuantity(t *testing.T) {
	var c Cart
	c.AddAddOn(streamAdd)
	c.AddAddOn(streamAdd)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	var c Cart

	c.AddPackage(webinarPkg)
	if got := c.Total(); got != 3000 {
		t.Errorf("after AddPackage: total = %v, want 3000", got)
	}

	c.AddAddOn(streamAdd)
	c.AddAddOn(streamAdd)
	if got := c.Total(); got != 4500 {
		t.Errorf("after two AddAddOn: total = %v, want 4500", got)
	}

	c.UpdateQuantity("stream", 3)
	if got := c.Total(); got != 5250 {
		t.Errorf("after UpdateQuantity(3): total = %v, want 5250", got)
	}

	c.RemoveItem("webinar")
	if got := c.Total(); got != 2250 {
		t.Errorf("after RemoveItem: total = %v, want 2250", got)
	}
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	var c Cart
	c.AddAddOn(streamAdd)
	c.UpdateQuantity("stream", 0)

	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
	if got := c.Total(); got != 0 {
		t.Errorf("total = %v, want 0", got)
	}
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	items := []model.LineItem{
		{ID: "a", Price: 0.1, Quantity: 3},
		{ID: "b", Price: 0.2, Quantity: 1},
	}
	if got := Total(items); got != 0.5 {
		t.Errorf("total = %v, want 0.5", got)
	}
}
