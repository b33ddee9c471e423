// Package models defines the typed tree for the raw legislative sentiment dataset.
//
// The source JSON mixes English and Korean keys and carries two legacy spellings
// for the "loosen" reform stance. All numeric leaves decode through the coercing
// Count type, and the legacy-field ambiguity is resolved once by the accessor
// methods on SubCategory instead of at every aggregation site.
package models
