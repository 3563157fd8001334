package dday

// LabelDescription is set on labels created by the labeler.
const LabelDescription = "D-Day Label"

// Hex colors, no leading '#', as the GitHub API expects.
var labelColors = map[string]string{
	"D-0": "ED1C24", // red
	"D-1": "F08650", // orange
	"D-2": "FFFD55", // yellow
}

const defaultLabelColor = "75F94D" // green, D-3 and beyond

// ColorFor returns the hex color for a D-Day label. Anything outside the
// fixed table falls back to green.
func ColorFor(label string) string {
	if color, ok := labelColors[label]; ok {
		return color
	}
	return defaultLabelColor
}
