package viewport

// ScrollPercent returns the scroll position as a fraction in [0, 1].
func (v *Viewport) ScrollPercent(doc Document) float64 {
	maxTop := lineCount(doc) - v.Height
	if maxTop <= 0 {
		return 0
	}
	return min(float64(v.TopLine(doc))/float64(maxTop), 1)
}

// ScrollToPercent scrolls to a fraction of the scrollable range.
func (v *Viewport) ScrollToPercent(doc Document, percent float64) {
	percent = min(max(percent, 0), 1)
	maxTop := max(lineCount(doc)-v.Height, 0)
	v.SetTopLine(doc, int(percent*float64(maxTop)+0.5))
}
