// Package wallreset corrects odometry drift by re-anchoring the tracked pose
// against the field perimeter walls with distance sensors.
//
// Field convention: the origin sits at field center, walls at +/- the half
// extent on both axes, heading 0 points at the top (+Y) wall and grows
// clockwise.
package wallreset

import (
	fnutils "github.com/fieldnav/fieldnav/utils"
)

// Wall identifies one side of the field perimeter.
type Wall uint8

const (
	// WallTop is the +Y wall.
	WallTop Wall = iota
	// WallRight is the +X wall.
	WallRight
	// WallBottom is the -Y wall.
	WallBottom
	// WallLeft is the -X wall.
	WallLeft
)

func (w Wall) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallRight:
		return "right"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	}
	return "unknown"
}

// Axis identifies which pose coordinate a wall constrains.
type Axis uint8

const (
	// AxisX runs toward the right wall.
	AxisX Axis = iota
	// AxisY runs toward the top wall.
	AxisY
)

// A Facing describes the wall a sensor points at: the axis that wall
// constrains, the sign of that axis at the wall, and the heading a robot
// squarely backed to or facing the wall would report.
type Facing struct {
	Wall                 Wall
	Axis                 Axis
	Sign                 float64
	PerpendicularHeading float64
}

// ClassifyWall determines which perimeter wall a sensor pointed along
// effectiveHeadingDeg looks at. The input is the sensor direction in world
// space (tracked heading plus mount angle) and may be any real number of
// degrees. Quadrant boundaries sit on the 45 degree marks, leaving 45
// degrees of heading margin before a wall is misidentified; a tracked
// heading off by more than that margin selects the wrong wall with no error
// surfacing.
func ClassifyWall(effectiveHeadingDeg float64) Facing {
	h := fnutils.ModAngDeg(effectiveHeadingDeg)
	switch {
	case h >= 315 || h <= 45:
		return Facing{Wall: WallTop, Axis: AxisY, Sign: 1, PerpendicularHeading: 180}
	case h <= 135:
		return Facing{Wall: WallRight, Axis: AxisX, Sign: 1, PerpendicularHeading: 270}
	case h <= 225:
		return Facing{Wall: WallBottom, Axis: AxisY, Sign: -1, PerpendicularHeading: 0}
	default:
		return Facing{Wall: WallLeft, Axis: AxisX, Sign: -1, PerpendicularHeading: 90}
	}
}
