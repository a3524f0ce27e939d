package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax data, the filter scanned
// bi-level documents usually arrive in.
//
// The K parameter selects the coding scheme (negative means Group 4,
// otherwise Group 3), Columns defaults to 1728 per the PDF spec, and
// BlackIs1 maps onto the decoder's invert option.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	sf := ccitt.Group3
	if params.K < 0 {
		sf = ccitt.Group4
	}
	columns := params.columnsOr(1728)
	rows := params.Rows
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{Invert: params.BlackIs1}
	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, opts)
	return io.ReadAll(r)
}
