package monday

import (
	"encoding/json"
	"fmt"
)

// NoData is the text handed to the model when the tool returned nothing.
const NoData = "No data returned."

// CompactItem is the token-economical form of a board item.
// Only the display text of each column survives. Values is always an
// object, empty when the item has no columns.
type CompactItem struct {
	Name   string             `json:"name"`
	Values map[string]*string `json:"values"`
}

// Shape reduces a payload before it re-enters the model context.
// Items pages become []CompactItem; opaque values are returned unchanged.
func Shape(p Payload) any {
	switch v := p.(type) {
	case ItemsPage:
		out := make([]CompactItem, 0, len(v.Items))
		for _, item := range v.Items {
			c := CompactItem{Name: item.Name, Values: make(map[string]*string, len(item.ColumnValues))}
			for _, cv := range item.ColumnValues {
				key := cv.ID
				if key == "" {
					key = cv.Title
				}
				c.Values[key] = cv.Text
			}
			out = append(out, c)
		}
		return out
	case Opaque:
		return v.Value
	}
	return nil
}

// Encode renders a shaped value as model-facing text: strings pass through,
// empty values become NoData, everything else is compact JSON.
func Encode(v any) string {
	switch t := v.(type) {
	case nil:
		return NoData
	case string:
		if t == "" {
			return NoData
		}
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Compress classifies, shapes and encodes a raw tool payload in one step.
func Compress(v any) (any, string) {
	shaped := Shape(Classify(v))
	return shaped, Encode(shaped)
}
