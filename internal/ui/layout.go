package ui

const (
	MinCols  = 80
	MinRows  = 24
	WideCols = 120
	WideRows = 30

	sidebarWidth = 24
)

// DetermineLayoutMode picks the sidebar layout on large terminals and the
// top tab bar otherwise.
func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < MinCols || rows < MinRows {
		return LayoutTooSmall
	}
	if cols >= WideCols && rows >= WideRows {
		return LayoutWide
	}
	return LayoutMedium
}
