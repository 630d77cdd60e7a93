package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func addCartBody(t *testing.T, productID int64, quantity int64) []byte {
	t.Helper()

	b, err := json.Marshal(map[string]int64{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		t.Fatalf("marshal add cart body: %v", err)
	}
	return b
}

// 同じ商品を2回追加すると行は1つで数量が合算される
func Test_Cart_AddTwice_AggregatesQuantity(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	access := registerAndLogin(t, c, ctx)

	name := fmt.Sprintf("E2E-CartBeans-%d", time.Now().UnixNano())
	productID := createProduct(t, c, ctx, name, "10.00")

	// 初回は空
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var cart CartListEnvelope
	mustDecode(t, body, &cart)
	if len(cart.CartItems) != 0 {
		t.Fatalf("expected empty cart for new user, got %d items", len(cart.CartItems))
	}

	// quantity 2 → quantity 3
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addCartBody(t, productID, 2))
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addCartBody(t, productID, 3))
	requireStatus(t, resp, http.StatusOK, body)

	var added CartItemEnvelope
	mustDecode(t, body, &added)
	if added.CartItem.Quantity != 5 {
		t.Fatalf("expected aggregated quantity 5, got %d body=%s", added.CartItem.Quantity, string(body))
	}

	// カートにはその商品の行が1つだけ
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	mustDecode(t, body, &cart)
	count := 0
	for _, item := range cart.CartItems {
		if item.ProductID == productID {
			count++
			if item.Quantity != 5 {
				t.Fatalf("expected quantity 5, got %d", item.Quantity)
			}
			// 商品と画像がeager loadされている
			if item.Product == nil || item.Product.ID != productID {
				t.Fatalf("cart item missing product: %s", string(body))
			}
			if len(item.Product.Images) == 0 {
				t.Fatalf("cart item product missing images: %s", string(body))
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 cart row for product %d, got %d", productID, count)
	}
}

func Test_Cart_AddNonexistentProduct_Returns422(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	access := registerAndLogin(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addCartBody(t, 999999999, 1))
	requireStatus(t, resp, http.StatusUnprocessableEntity, body)

	var env ErrorEnvelope
	mustDecode(t, body, &env)
	if len(env.Errors["product_id"]) == 0 {
		t.Fatalf("expected product_id field error: %s", string(body))
	}
}

func Test_Cart_ZeroQuantity_Returns422(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	access := registerAndLogin(t, c, ctx)

	name := fmt.Sprintf("E2E-CartZero-%d", time.Now().UnixNano())
	productID := createProduct(t, c, ctx, name, "3.00")

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addCartBody(t, productID, 0))
	requireStatus(t, resp, http.StatusUnprocessableEntity, body)

	var env ErrorEnvelope
	mustDecode(t, body, &env)
	if len(env.Errors["quantity"]) == 0 {
		t.Fatalf("expected quantity field error: %s", string(body))
	}
}

func Test_Cart_WithoutToken_Returns401(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", "", addCartBody(t, 1, 1))
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
