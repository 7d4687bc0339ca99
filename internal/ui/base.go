package ui

// Base provides size management for components. Embed it in a model to
// get the standard methods.
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the component dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// BodyHeight returns the height left for content between header and footer.
func (b Base) BodyHeight() int {
	return max(b.height-HeaderHeight-FooterHeight, 0)
}
