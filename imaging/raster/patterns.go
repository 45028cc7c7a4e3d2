package raster

// Pre-baked preview patterns for generated calibration prints. Both scale
// with the requested size so the same renderer covers a 16x16 icon and a
// 220x124 preview.

// RenderChevrons draws rows of V-shaped chevrons, the preview used for
// flow/pressure calibration patterns. Returns a complete PNG.
func RenderChevrons(width, height int) []byte {
	canvas := New(width, height)

	rows := clamp(height/20, 2, 5)
	marginX := max(1, width/10)
	marginY := max(1, height/10)
	thickness := max(1, min(width, height)/22)
	bandHeight := float64(height-2*marginY) / float64(rows)

	for i := 0; i < rows; i++ {
		centerY := float64(marginY) + (float64(i)+0.5)*bandHeight
		arm := max(1, int(bandHeight*0.38))
		canvas.Line(marginX, int(centerY), width-marginX, int(centerY)-arm, thickness)
		canvas.Line(marginX, int(centerY), width-marginX, int(centerY)+arm, thickness)
	}
	return canvas.PNG()
}

// RenderSlabTower draws a stack of horizontal slabs joined by side walls, the
// silhouette of a temperature/bridging test tower. Returns a complete PNG.
func RenderSlabTower(width, height int) []byte {
	canvas := New(width, height)

	segments := clamp(height/16, 2, 7)
	topMargin := max(1, height/10)
	segmentHeight := max(3, (height-topMargin)/segments)
	slabHeight := max(1, segmentHeight/3)
	slabWidth := max(6, width*4/5)
	wallWidth := max(1, slabWidth/5)
	slabX := (width - slabWidth) / 2

	for i := 0; i < segments; i++ {
		y0 := topMargin + i*segmentHeight
		canvas.FillRect(slabX, y0, slabX+slabWidth, y0+slabHeight)
		canvas.FillRect(slabX, y0+slabHeight, slabX+wallWidth, y0+segmentHeight)
		canvas.FillRect(
			slabX+slabWidth-wallWidth, y0+slabHeight, slabX+slabWidth, y0+segmentHeight)
	}
	return canvas.PNG()
}

func clamp(v, low, high int) int {
	return max(low, min(high, v))
}
