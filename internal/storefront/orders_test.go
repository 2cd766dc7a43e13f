package storefront

import (
	"context"
	"strings"
	"testing"

	"Audilog/pkg/kv"
)

func TestCheckout_BuildsOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	orders := NewOrderStore()

	if err := cart.Add(ctx, tomato()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.Add(ctx, tomato()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.Add(ctx, pottery()); err != nil {
		t.Fatalf("add: %v", err)
	}

	o, err := Checkout(ctx, cart, orders, "Priya Sharma")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !strings.HasPrefix(o.ID, "o_") {
		t.Fatalf("order id=%q", o.ID)
	}
	if o.Total != 2*45+299 {
		t.Fatalf("total=%d", o.Total)
	}
	if o.Status != "pending" {
		t.Fatalf("status=%q", o.Status)
	}
	if len(cart.Items(ctx)) != 0 {
		t.Fatal("cart not cleared after checkout")
	}

	listed, err := orders.ListNewestFirst(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].ID != o.ID {
		t.Fatalf("newest order=%q want=%q", listed[0].ID, o.ID)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	orders := NewOrderStore()

	if _, err := Checkout(ctx, cart, orders, "Priya Sharma"); err != ErrEmptyCart {
		t.Fatalf("err=%v want=ErrEmptyCart", err)
	}
}

func TestPrefs_LanguageDefaultAndValidation(t *testing.T) {
	ctx := context.Background()
	p := NewPrefs(kv.NewMemStore())

	code, err := p.Language(ctx)
	if err != nil || code != "en" {
		t.Fatalf("default language=%q err=%v", code, err)
	}

	if err := p.SetLanguage(ctx, "ta"); err != nil {
		t.Fatalf("set: %v", err)
	}
	code, err = p.Language(ctx)
	if err != nil || code != "ta" {
		t.Fatalf("language=%q err=%v", code, err)
	}

	if err := p.SetLanguage(ctx, "fr"); err != ErrBadLanguage {
		t.Fatalf("err=%v want=ErrBadLanguage", err)
	}
}
