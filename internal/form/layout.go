package form

// Cell places one field in the grid.
type Cell struct {
	Field     FieldDescriptor `json:"field"`
	FullWidth bool            `json:"full_width"`
	ShowLabel bool            `json:"show_label"`
}

// Row is one grid row: a single full-width cell or up to two half cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Layout arranges fields into a two-column grid.
func (r *Registry) Layout(fields []FieldDescriptor) []Row {
	var rows []Row
	var pending []Cell

	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, Row{Cells: pending})
			pending = nil
		}
	}

	for _, f := range fields {
		k := r.Kind(f.Type)
		cell := Cell{
			Field:     f,
			FullWidth: f.FullWidth || k.FullWidth() || f.IsSeparator(),
			ShowLabel: !k.InlineLabel(),
		}
		if cell.FullWidth {
			flush()
			rows = append(rows, Row{Cells: []Cell{cell}})
			continue
		}
		pending = append(pending, cell)
		if len(pending) == 2 {
			flush()
		}
	}
	flush()
	return rows
}

// Layout uses the default registry.
func Layout(fields []FieldDescriptor) []Row {
	return Default.Layout(fields)
}
