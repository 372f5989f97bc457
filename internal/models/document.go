package models

// Document is a store document read generically, field name to value.
type Document map[string]any

// IDKey is the primary key field of every document.
const IDKey = "_id"

// Without returns a copy of d lacking key.
func (d Document) Without(key string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k != key {
			out[k] = v
		}
	}
	return out
}
