// Package catalog exposes the read-only reference tables the contact
// form is populated from.
package catalog

// Entry is the uniform shape for every catalog row, regardless of the
// underlying column names.
type Entry struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
