package card

// Control is one read-only form control in the rendered card.
type Control struct {
	Field     string `json:"field"`
	Label     string `json:"label"`
	Multiline bool   `json:"multiline,omitempty"`
}

// Section is a titled group of controls arranged in columns.
// A section with a single column renders full width.
type Section struct {
	Title   string      `json:"title"`
	Columns [][]Control `json:"columns"`
}

// Layout returns the display grouping of the canonical fields.
func Layout() []Section {
	return []Section{
		{
			Title: "Extracted Information",
			Columns: [][]Control{
				{
					{Field: FirstName, Label: FirstName},
					{Field: LastName, Label: LastName},
					{Field: Designation, Label: Designation},
				},
				{
					{Field: CompanyName, Label: CompanyName},
					{Field: Website, Label: Website},
				},
			},
		},
		{
			Title: "Contact Details",
			Columns: [][]Control{
				{
					{Field: Email, Label: Email},
					{Field: ContactNumber, Label: ContactNumber},
				},
				{
					{Field: FaxNumber, Label: FaxNumber},
					{Field: SocialMediaHandle, Label: "Social Media"},
				},
			},
		},
		{
			Title: "Address",
			Columns: [][]Control{
				{
					{Field: Address, Label: Address, Multiline: true},
				},
			},
		},
	}
}

// RenderedControl pairs a control with its display value.
type RenderedControl struct {
	Control
	Value string
}

// RenderedSection is a Section with values filled in.
type RenderedSection struct {
	Title   string
	Columns [][]RenderedControl
}

// Render fills the layout with values from rec, defaulting missing fields to "".
func Render(rec Record) []RenderedSection {
	display := Display(rec)
	layout := Layout()
	out := make([]RenderedSection, 0, len(layout))
	for _, s := range layout {
		rs := RenderedSection{Title: s.Title}
		for _, col := range s.Columns {
			rc := make([]RenderedControl, 0, len(col))
			for _, c := range col {
				rc = append(rc, RenderedControl{Control: c, Value: display[c.Field]})
			}
			rs.Columns = append(rs.Columns, rc)
		}
		out = append(out, rs)
	}
	return out
}
