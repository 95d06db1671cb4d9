package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Shape is the layout a list response came in.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeFlat is a plain array.
	ShapeFlat
	// ShapeWrapped is a paginator object with a data array and pagination keys.
	ShapeWrapped
	// ShapeGrouped is an object whose array values are concatenated in document order.
	ShapeGrouped
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeWrapped:
		return "wrapped"
	case ShapeGrouped:
		return "grouped"
	default:
		return "unknown"
	}
}

// Page is a normalised list response. Pages is never below 1.
type Page[T any] struct {
	Items []T
	Pages int
	Total int
	Shape Shape
}

var pageCountKeys = []string{"last_page", "total_pages", "pages", "page_count"}

type rawEntry struct {
	key   string
	value json.RawMessage
}

// ParsePage normalises data into a single ordered sequence. Pagination metadata is looked up in
// the wrapper first, then in meta, defaulting to one page.
func ParsePage[T any](data json.RawMessage, meta json.RawMessage) (Page[T], error) {
	page := Page[T]{Pages: 1}

	raw, shape, wrapper := classify(data)
	page.Shape = shape

	for _, value := range raw {
		var items []T
		if err := json.Unmarshal(value, &items); err != nil {
			return Page[T]{Pages: 1}, fmt.Errorf("failed to decode %s list: %w", shape, err)
		}
		page.Items = append(page.Items, items...)
	}

	pages, total := paginationOf(wrapper)
	if pages == 0 || total == 0 {
		metaPages, metaTotal := paginationOf(objectEntries(meta))
		if pages == 0 {
			pages = metaPages
		}
		if total == 0 {
			total = metaTotal
		}
	}
	if pages > 1 {
		page.Pages = pages
	}
	page.Total = total
	if page.Total == 0 {
		page.Total = len(page.Items)
	}

	return page, nil
}

// classify returns the array values making up the list, the detected shape and, for wrapped
// lists, the wrapper entries carrying pagination.
func classify(data json.RawMessage) ([]json.RawMessage, Shape, []rawEntry) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ShapeUnknown, nil
	}

	switch data[0] {
	case '[':
		return []json.RawMessage{data}, ShapeFlat, nil
	case '{':
		entries := objectEntries(data)
		for _, entry := range entries {
			if entry.key == "data" && isArray(entry.value) {
				return []json.RawMessage{entry.value}, ShapeWrapped, entries
			}
		}
		for _, entry := range entries {
			if entry.key == "data" && isObject(entry.value) {
				inner, shape, wrapper := classify(entry.value)
				if shape != ShapeUnknown {
					if wrapper == nil {
						wrapper = entries
					}
					return inner, shape, wrapper
				}
			}
		}

		var arrays []json.RawMessage
		for _, entry := range entries {
			if isArray(entry.value) {
				arrays = append(arrays, entry.value)
			}
		}
		if len(arrays) > 0 {
			return arrays, ShapeGrouped, nil
		}
	}
	return nil, ShapeUnknown, nil
}

// objectEntries decodes the top level of a json object keeping key order.
func objectEntries(data json.RawMessage) []rawEntry {
	data = bytes.TrimSpace(data)
	if !isObject(data) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var entries []rawEntry
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return entries
		}
		key, ok := token.(string)
		if !ok {
			return entries
		}
		var value json.RawMessage
		if err = dec.Decode(&value); err != nil {
			return entries
		}
		entries = append(entries, rawEntry{key: key, value: value})
	}
	return entries
}

func paginationOf(entries []rawEntry) (pages int, total int) {
	for _, entry := range entries {
		switch {
		case entry.key == "total":
			var n Int
			if json.Unmarshal(entry.value, &n) == nil {
				total = int(n)
			}
		case slices.Contains(pageCountKeys, entry.key):
			var n Int
			if json.Unmarshal(entry.value, &n) == nil && pages == 0 {
				pages = int(n)
			}
		case entry.key == "pagination" || entry.key == "meta":
			p, t := paginationOf(objectEntries(entry.value))
			if pages == 0 {
				pages = p
			}
			if total == 0 {
				total = t
			}
		}
	}
	return pages, total
}

func isArray(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

func isObject(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
