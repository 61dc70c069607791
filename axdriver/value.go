// Copyright 2026 Asma Gulbaz

// Raw value types crossing the driver boundary

package axdriver

// Value is a raw platform value as delivered by a Driver. Concrete types are
// limited to:
//
//   - nil (absent)
//   - bool, int64, float64, string
//   - Point, Size, Rect, Range
//   - Handle (a nested object reference)
//   - []Value (heterogeneous sequence, commonly of Handles)
//
// The core marshals these into domain values and recursively wraps nested
// Handles into element proxies; drivers never see wrapped forms.
type Value any

// Point is a screen position in global coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Rect is a rectangle in global coordinates.
type Rect struct {
	Origin Point
	Size   Size
}

// Range is a location/length pair, as used for text ranges.
type Range struct {
	Location int64
	Length   int64
}
