package monday

import "github.com/mitchellh/mapstructure"

// Payload is a decoded tool result. It is either an ItemsPage or an Opaque value.
type Payload interface {
	payload()
}

// ItemsPage is a page of board items with their column values.
type ItemsPage struct {
	Items []Item
}

// Item is one board item as returned by the items page query.
type Item struct {
	Name         string        `mapstructure:"name"`
	ColumnValues []ColumnValue `mapstructure:"column_values"`
}

// ColumnValue carries the display text of one column. Text is nil when the column is empty.
type ColumnValue struct {
	ID    string  `mapstructure:"id"`
	Title string  `mapstructure:"title"`
	Text  *string `mapstructure:"text"`
}

// Opaque is any payload that is not an items page.
type Opaque struct {
	Value any
}

func (ItemsPage) payload() {}
func (Opaque) payload()    {}

// Classify decides once, at the tool boundary, which kind of payload v is.
// A value is an ItemsPage when boards[0].items_page.items is an array of objects.
func Classify(v any) Payload {
	items, ok := itemsPath(v)
	if !ok {
		return Opaque{Value: v}
	}

	var decoded []Item
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return Opaque{Value: v}
	}
	if err := dec.Decode(items); err != nil {
		return Opaque{Value: v}
	}
	return ItemsPage{Items: decoded}
}

func itemsPath(v any) ([]any, bool) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	boards, ok := root["boards"].([]any)
	if !ok || len(boards) == 0 {
		return nil, false
	}
	board, ok := boards[0].(map[string]any)
	if !ok {
		return nil, false
	}
	page, ok := board["items_page"].(map[string]any)
	if !ok {
		return nil, false
	}
	items, ok := page["items"].([]any)
	return items, ok
}
