package models

import "strings"

// Surface represents the court surface a match is played on
type Surface string

const (
	SurfaceHard    Surface = "hard"
	SurfaceClay    Surface = "clay"
	SurfaceGrass   Surface = "grass"
	SurfaceUnknown Surface = "unknown"
)

// ParseSurface maps a free-text surface value onto one of the recognized
// surfaces. Anything unrecognized (carpet, indoor, empty) lands in the
// unknown bucket, which carries no rating history.
func ParseSurface(raw string) Surface {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hard":
		return SurfaceHard
	case "clay":
		return SurfaceClay
	case "grass":
		return SurfaceGrass
	default:
		return SurfaceUnknown
	}
}

// IsRecognized reports whether the surface is one of the three rated surfaces
func (s Surface) IsRecognized() bool {
	switch s {
	case SurfaceHard, SurfaceClay, SurfaceGrass:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (s Surface) String() string {
	return string(s)
}
