package pages

import (
	"fmt"

	"github.com/carouselpdf/carousel/core"
)

// Rectangle is a view over a four-element COS array of the form
// [llx lly urx ury]. The view shares the array with the dictionary it
// came from, so setters write through.
type Rectangle struct {
	arr core.Array
}

// NewRectangle builds a rectangle array from its corner coordinates.
func NewRectangle(llx, lly, urx, ury float64) *Rectangle {
	return &Rectangle{arr: core.Array{
		core.Real(llx), core.Real(lly), core.Real(urx), core.Real(ury),
	}}
}

// RectangleFromArray wraps an existing array. Arrays with fewer than
// four elements yield nil.
func RectangleFromArray(arr core.Array) *Rectangle {
	if len(arr) < 4 {
		return nil
	}
	return &Rectangle{arr: arr}
}

// Array returns the underlying COS array.
func (r *Rectangle) Array() core.Array {
	return r.arr
}

// LowerLeftX returns the lower-left x coordinate.
func (r *Rectangle) LowerLeftX() float64 { return r.arr.Float(0) }

// LowerLeftY returns the lower-left y coordinate.
func (r *Rectangle) LowerLeftY() float64 { return r.arr.Float(1) }

// UpperRightX returns the upper-right x coordinate.
func (r *Rectangle) UpperRightX() float64 { return r.arr.Float(2) }

// UpperRightY returns the upper-right y coordinate.
func (r *Rectangle) UpperRightY() float64 { return r.arr.Float(3) }

// SetLowerLeftX sets the lower-left x coordinate.
func (r *Rectangle) SetLowerLeftX(v float64) { r.arr[0] = core.Real(v) }

// SetLowerLeftY sets the lower-left y coordinate.
func (r *Rectangle) SetLowerLeftY(v float64) { r.arr[1] = core.Real(v) }

// SetUpperRightX sets the upper-right x coordinate.
func (r *Rectangle) SetUpperRightX(v float64) { r.arr[2] = core.Real(v) }

// SetUpperRightY sets the upper-right y coordinate.
func (r *Rectangle) SetUpperRightY(v float64) { r.arr[3] = core.Real(v) }

// Width returns the rectangle width.
func (r *Rectangle) Width() float64 {
	return r.UpperRightX() - r.LowerLeftX()
}

// Height returns the rectangle height.
func (r *Rectangle) Height() float64 {
	return r.UpperRightY() - r.LowerLeftY()
}

// String returns the rectangle in [llx lly urx ury] form.
func (r *Rectangle) String() string {
	return fmt.Sprintf("[%g %g %g %g]",
		r.LowerLeftX(), r.LowerLeftY(), r.UpperRightX(), r.UpperRightY())
}
