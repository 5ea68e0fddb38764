package cart

import (
	"encoding/json"
	"strings"
)

// Decode parses a stored cart. Absent, empty, null or malformed data all
// yield an empty cart; it never returns an error. Lines without a product or
// a positive quantity are dropped and repeated products are folded into the
// first line for that product.
func Decode(raw string) []Item {
	if strings.TrimSpace(raw) == "" {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []Item{}
	}
	return normalize(items)
}

func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			continue
		}
		if i := IndexOf(out, it.ProductID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
