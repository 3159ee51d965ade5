package layout

// FitImage scales an image of iw x ih pixels into a w x h box, keeping the
// aspect ratio. It returns the drawn size and the offset that centers it.
func FitImage(iw, ih int, w, h float64) (dw, dh, dx, dy float64) {
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return 0, 0, 0, 0
	}
	scale := w / float64(iw)
	if s := h / float64(ih); s < scale {
		scale = s
	}
	dw = float64(iw) * scale
	dh = float64(ih) * scale
	return dw, dh, (w - dw) / 2, (h - dh) / 2
}
