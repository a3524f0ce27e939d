package filters

// Params carries the decode parameters a filter may consult, flattened
// from the stream dictionary's /DecodeParms. Zero values mean "not
// specified"; each filter applies its own spec defaults.
type Params struct {
	Predictor        int
	Columns          int
	Colors           int
	BitsPerComponent int

	// CCITTFaxDecode parameters.
	K        int
	Rows     int
	BlackIs1 bool
}

// columnsOr returns the Columns parameter, or def when unspecified.
func (p Params) columnsOr(def int) int {
	if p.Columns <= 0 {
		return def
	}
	return p.Columns
}

// colorsOr returns the Colors parameter, or def when unspecified.
func (p Params) colorsOr(def int) int {
	if p.Colors <= 0 {
		return def
	}
	return p.Colors
}

// bitsOr returns the BitsPerComponent parameter, or def when
// unspecified.
func (p Params) bitsOr(def int) int {
	if p.BitsPerComponent <= 0 {
		return def
	}
	return p.BitsPerComponent
}
