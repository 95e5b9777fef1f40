package designgen

import "math"

// DeviceCategory buckets device presets by form factor.
type DeviceCategory string

const (
	DevicePhone   DeviceCategory = "phone"
	DeviceTablet  DeviceCategory = "tablet"
	DeviceDesktop DeviceCategory = "desktop"
)

// DeviceInfo describes a named device preset. The generator only consumes
// the selected base device's width and height.
type DeviceInfo struct {
	Name        string         `json:"name"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	AspectRatio float64        `json:"aspectRatio"`
	Orientation string         `json:"orientation"` // portrait or landscape
	Category    DeviceCategory `json:"category"`
}

// devicePresets is the matching table, portrait-oriented logical pixels.
var devicePresets = []DeviceInfo{
	{Name: "iPhone SE", Width: 375, Height: 667, Category: DevicePhone},
	{Name: "iPhone 14", Width: 390, Height: 844, Category: DevicePhone},
	{Name: "iPhone 14 Pro Max", Width: 430, Height: 932, Category: DevicePhone},
	{Name: "Pixel 7", Width: 412, Height: 915, Category: DevicePhone},
	{Name: "Galaxy S20", Width: 360, Height: 800, Category: DevicePhone},
	{Name: "iPad Mini", Width: 768, Height: 1024, Category: DeviceTablet},
	{Name: "iPad Pro 12.9", Width: 1024, Height: 1366, Category: DeviceTablet},
	{Name: "Desktop", Width: 1440, Height: 900, Category: DeviceDesktop},
	{Name: "Desktop HD", Width: 1920, Height: 1080, Category: DeviceDesktop},
}

// DetectDevice matches a frame's pixel dimensions against the preset table
// and returns the closest preset, adjusted for orientation.
func DetectDevice(width, height float64) DeviceInfo {
	portraitW, portraitH := width, height
	orientation := "portrait"
	if width > height {
		portraitW, portraitH = height, width
		orientation = "landscape"
	}

	best := devicePresets[0]
	bestDistance := math.Inf(1)
	for _, preset := range devicePresets {
		d := math.Hypot(preset.Width-portraitW, preset.Height-portraitH)
		if d < bestDistance {
			bestDistance = d
			best = preset
		}
	}

	best.Orientation = orientation
	if orientation == "landscape" {
		best.Width, best.Height = best.Height, best.Width
	}
	best.AspectRatio = ratio(best.Width, best.Height)
	return best
}

// SelectBaseDevice picks the base device for responsive scaling from the
// devices detected across a document's frames: the most frequent preset
// wins, ties broken by first appearance.
func SelectBaseDevice(devices []DeviceInfo) (DeviceInfo, bool) {
	if len(devices) == 0 {
		return DeviceInfo{}, false
	}
	counts := make(map[string]int, len(devices))
	for _, d := range devices {
		counts[d.Name]++
	}
	best := devices[0]
	for _, d := range devices {
		if counts[d.Name] > counts[best.Name] {
			best = d
		}
	}
	return best, true
}

func ratio(w, h float64) float64 {
	if h == 0 {
		return 0
	}
	return w / h
}
