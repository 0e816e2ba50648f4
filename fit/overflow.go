package fit

// Box is a measurement of one element: its visible client area and the size
// of its scrollable content. Values are in pixels.
type Box struct {
	ClientWidth  int
	ClientHeight int
	ScrollWidth  int
	ScrollHeight int
}

// HasHorizontalOverflow reports whether content is wider than the parent's client area
func HasHorizontalOverflow(parent, content Box) bool {
	return content.ScrollWidth-parent.ClientWidth > 0
}

// HasVerticalOverflow reports whether content is taller than the parent's client area
func HasVerticalOverflow(parent, content Box) bool {
	return content.ClientHeight-parent.ClientHeight > 0
}

// HasOverflow reports overflow on either axis, horizontal first
func HasOverflow(parent, content Box) bool {
	return HasHorizontalOverflow(parent, content) || HasVerticalOverflow(parent, content)
}

// IsVisible treats a box with no height as not yet laid out
func IsVisible(box Box) bool {
	return box.ClientHeight > 0
}
