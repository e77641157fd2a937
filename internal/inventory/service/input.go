package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"flexstock/internal/inventory"

	"github.com/shopspring/decimal"
)

// ParseUpdate normalizes a loosely typed change description, as decoded from
// a JSON body, into an inventory.Update. Keys may be snake_case or camelCase.
// Absent and null values stay nil.
func ParseUpdate(input map[string]any) (inventory.Update, error) {
	var u inventory.Update

	raw, ok := lookup(input, "type", "type")
	if !ok {
		return inventory.Update{}, inventory.MissingField("type")
	}
	typ, err := toString("type", raw)
	if err != nil {
		return inventory.Update{}, err
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return inventory.Update{}, inventory.MissingField("type")
	}
	u.Type = inventory.EventType(typ)

	u.User = inventory.DefaultUser
	if raw, ok := lookup(input, "user", "user"); ok {
		user, err := toString("user", raw)
		if err != nil {
			return inventory.Update{}, err
		}
		if strings.TrimSpace(user) != "" {
			u.User = user
		}
	}

	if u.ProductID, err = optionalInteger(input, "product_id", "productId", math.MinInt64, math.MaxInt64); err != nil {
		return inventory.Update{}, err
	}

	ints := []struct {
		dst        **int
		key, camel string
	}{
		{&u.OldQuantity, "old_quantity", "oldQuantity"},
		{&u.NewQuantity, "new_quantity", "newQuantity"},
		{&u.OldReorderLevel, "old_reorder_level", "oldReorderLevel"},
		{&u.NewReorderLevel, "new_reorder_level", "newReorderLevel"},
	}
	for _, f := range ints {
		v, err := optionalInteger(input, f.key, f.camel, inventory.MinQuantity, inventory.MaxQuantity)
		if err != nil {
			return inventory.Update{}, err
		}
		if v != nil {
			n := int(*v)
			*f.dst = &n
		}
	}

	strs := []struct {
		dst        **string
		key, camel string
	}{
		{&u.ProductName, "product_name", "productName"},
		{&u.OldName, "old_name", "oldName"},
		{&u.NewName, "new_name", "newName"},
		{&u.OldCategory, "old_category", "oldCategory"},
		{&u.NewCategory, "new_category", "newCategory"},
	}
	for _, f := range strs {
		raw, ok := lookup(input, f.key, f.camel)
		if !ok {
			continue
		}
		s, err := toString(f.key, raw)
		if err != nil {
			return inventory.Update{}, err
		}
		*f.dst = &s
	}

	if u.OldPrice, err = optionalPrice(input, "old_price", "oldPrice"); err != nil {
		return inventory.Update{}, err
	}
	if u.NewPrice, err = optionalPrice(input, "new_price", "newPrice"); err != nil {
		return inventory.Update{}, err
	}

	return u, nil
}

func lookup(input map[string]any, key, camel string) (any, bool) {
	if v, ok := input[key]; ok && v != nil {
		return v, true
	}
	if v, ok := input[camel]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// optionalInteger truncates fractional input toward zero and rejects values
// outside [lo, hi].
func optionalInteger(input map[string]any, key, camel string, lo, hi int64) (*int64, error) {
	d, err := optionalDecimal(input, key, camel)
	if err != nil || d == nil {
		return nil, err
	}
	t := d.Truncate(0)
	if t.LessThan(decimal.NewFromInt(lo)) || t.GreaterThan(decimal.NewFromInt(hi)) {
		return nil, inventory.InvalidFormat(key)
	}
	n := t.IntPart()
	return &n, nil
}

func optionalPrice(input map[string]any, key, camel string) (*decimal.Decimal, error) {
	d, err := optionalDecimal(input, key, camel)
	if err != nil || d == nil {
		return nil, err
	}
	if !inventory.PriceFits(*d) {
		return nil, inventory.InvalidFormat(key)
	}
	return d, nil
}

func optionalDecimal(input map[string]any, key, camel string) (*decimal.Decimal, error) {
	raw, ok := lookup(input, key, camel)
	if !ok {
		return nil, nil
	}
	d, err := toDecimal(raw)
	if err != nil || !inventory.BoundedExponent(d) {
		return nil, inventory.InvalidFormat(key)
	}
	return &d, nil
}

// maxNumericLength caps textual numbers before they reach big.Int parsing.
const maxNumericLength = 64

func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case json.Number:
		return parseDecimal(v.String())
	case string:
		return parseDecimal(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Decimal{}, inventory.ErrInvalidFormat
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if len(s) > maxNumericLength {
		return decimal.Decimal{}, inventory.ErrInvalidFormat
	}
	return decimal.NewFromString(s)
}

func toString(field string, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", inventory.InvalidFormat(field)
	}
}
