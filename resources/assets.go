package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

// Icon names a generated status icon.
type Icon string

const (
	IconIdle    Icon = "idle"
	IconRunning Icon = "running"
	IconOverdue Icon = "overdue"
)

const (
	iconSize     = 64
	iconFileType = ".png"
)

var iconColors = map[Icon]color.NRGBA{
	IconIdle:    {R: 140, G: 140, B: 140, A: 255},
	IconRunning: {R: 46, G: 184, B: 92, A: 255},
	IconOverdue: {R: 220, G: 53, B: 69, A: 255},
}

var iconCache sync.Map

// StatusIcon returns a Fyne resource for the given status icon.
func StatusIcon(icon Icon) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(icon); ok {
		return cached.(fyne.Resource), nil
	}

	fill, ok := iconColors[icon]
	if !ok {
		return nil, fmt.Errorf("load icon %s: unknown icon", icon)
	}
	data, err := renderDot(fill)
	if err != nil {
		return nil, fmt.Errorf("load icon %s: %w", icon, err)
	}

	resource := fyne.NewStaticResource(string(icon)+iconFileType, data)
	iconCache.Store(icon, resource)
	return resource, nil
}

// MustStatusIcon returns a Fyne resource or panics on error.
func MustStatusIcon(icon Icon) fyne.Resource {
	resource, err := StatusIcon(icon)
	if err != nil {
		panic(err)
	}
	return resource
}

func renderDot(fill color.NRGBA) ([]byte, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize-1) / 2
	radius := float64(iconSize) / 2 * 0.9
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if dx*dx+dy*dy <= radius*radius {
				canvas.SetNRGBA(x, y, fill)
			}
		}
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, canvas); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
