package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults applied when a checkout payload omits campus or pickup point.
const (
	DefaultCampus      = "SEC"
	DefaultPickupPoint = "SEC-A Lobby"
)

// ErrMalformedCart indicates the payload could not be interpreted as any of
// the tolerated cart shapes.
var ErrMalformedCart = errors.New("malformed cart payload")

// Cart is the canonical form of a checkout payload after boundary
// normalization. Pricing logic only ever sees this shape.
type Cart struct {
	Campus      string
	PickupPoint string
	Items       []CartItem
}

// CartItem is one normalized cart line. Quantity keeps the raw coerced value
// so the finite-and-positive rule can be applied at use time; Snapshot is the
// client-supplied unit price, used only when the catalog has no authoritative
// price.
type CartItem struct {
	ProductID string
	Quantity  float64
	Snapshot  float64
}

// EffectiveQuantity returns the quantity to charge: the normalized quantity
// when finite and positive, otherwise 1.
func (i CartItem) EffectiveQuantity() int {
	q := i.Quantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 1
	}
	n := int(math.Round(q))
	if n < 1 {
		n = 1
	}
	return n
}

// SnapshotUsable reports whether the client price snapshot can serve as a
// fallback unit price.
func (i CartItem) SnapshotUsable() bool {
	return !math.IsNaN(i.Snapshot) && !math.IsInf(i.Snapshot, 0)
}

// ParseCart normalizes a loosely-shaped checkout payload. Three shapes are
// accepted: a bare array of item-like objects, an object with an "items"
// array, or an object with a "cart" array. Field coercion follows
// parse-or-default rules: productId is the first non-empty of productId, id,
// name (stringified and trimmed); quantity coerces qty then quantity,
// defaulting to 1; the price snapshot coerces price, defaulting to 0.
func ParseCart(raw []byte) (*Cart, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	cart := &Cart{
		Campus:      DefaultCampus,
		PickupPoint: DefaultPickupPoint,
	}

	var rawItems []any
	switch v := payload.(type) {
	case []any:
		rawItems = v
	case map[string]any:
		if s := coerceString(v["campus"]); s != "" {
			cart.Campus = s
		}
		if s := coerceString(v["pickupPoint"]); s != "" {
			cart.PickupPoint = s
		}
		if items, ok := v["items"].([]any); ok {
			rawItems = items
		} else if items, ok := v["cart"].([]any); ok {
			rawItems = items
		}
	default:
		return nil, fmt.Errorf("%w: expected an array or object, got %T", ErrMalformedCart, payload)
	}

	cart.Items = make([]CartItem, 0, len(rawItems))
	for _, ri := range rawItems {
		m, _ := ri.(map[string]any)
		cart.Items = append(cart.Items, normalizeItem(m))
	}

	return cart, nil
}

// normalizeItem coerces a single raw item. A nil map (non-object item) yields
// the all-defaults item: empty product id, quantity 1, snapshot 0.
func normalizeItem(m map[string]any) CartItem {
	return CartItem{
		ProductID: firstNonEmpty(m, "productId", "id", "name"),
		Quantity:  coerceNumber(pickField(m, "qty", "quantity"), 1),
		Snapshot:  coerceNumber(m["price"], 0),
	}
}

// pickField returns the value of the first key present in the map.
func pickField(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// firstNonEmpty stringifies the given fields in order and returns the first
// non-empty trimmed result.
func firstNonEmpty(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := coerceString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// coerceString renders a scalar the way a loosely-typed client expects:
// strings are trimmed, numbers are rendered without exponent notation,
// anything else is empty.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// coerceNumber applies loose numeric coercion: JSON numbers pass through,
// numeric strings are parsed, anything else (including absence) yields the
// default.
func coerceNumber(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}
