// Package card defines the business card record and the logic that recovers it
// from free-form model output.
package card

import "sort"

// Canonical field names. These are also the JSON keys the model is asked to emit.
const (
	FirstName         = "First Name"
	LastName          = "Last Name"
	Designation       = "Designation"
	CompanyName       = "Company Name"
	Email             = "Email"
	ContactNumber     = "Contact Number"
	FaxNumber         = "Fax Number"
	Website           = "Website"
	Address           = "Address"
	SocialMediaHandle = "Social Media Handle"
)

// Fields lists the canonical fields in schema order.
var Fields = []string{
	FirstName,
	LastName,
	Designation,
	CompanyName,
	Email,
	ContactNumber,
	FaxNumber,
	Website,
	Address,
	SocialMediaHandle,
}

// Record maps field names to values.
// A Record produced by Extract may be partial or carry keys outside Fields;
// use Display to get a record with exactly the canonical keys.
type Record map[string]string

// Get returns the value for field, or "" if absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Empty reports whether the record has no fields at all.
func (r Record) Empty() bool {
	return len(r) == 0
}

// IsCanonical reports whether name is one of the ten canonical fields.
func IsCanonical(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Display projects rec onto the canonical fields.
// Missing fields default to the empty string and non-canonical keys are dropped.
// rec itself is not modified.
func Display(rec Record) Record {
	out := make(Record, len(Fields))
	for _, f := range Fields {
		out[f] = rec[f]
	}
	return out
}

// Missing returns the canonical fields absent from rec, in schema order.
func Missing(rec Record) []string {
	var missing []string
	for _, f := range Fields {
		if _, ok := rec[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Extra lists the keys of rec that are not canonical fields, sorted.
func Extra(rec Record) []string {
	var out []string
	for k := range rec {
		if !IsCanonical(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
