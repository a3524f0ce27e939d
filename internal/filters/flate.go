package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses zlib/deflate data, the workhorse filter of
// PDF, then undoes the optional predictor transform.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	out := buf.Bytes()

	switch {
	case params.Predictor <= 1:
		return out, nil
	case params.Predictor == 2:
		return tiffPredict(out, params)
	case params.Predictor >= 10 && params.Predictor <= 15:
		return pngPredict(out, params)
	default:
		return nil, fmt.Errorf("unsupported predictor: %d", params.Predictor)
	}
}

// tiffPredict undoes TIFF Predictor 2: each sample was stored as the
// difference from the sample to its left.
func tiffPredict(data []byte, params Params) ([]byte, error) {
	if bpc := params.bitsOr(8); bpc != 8 {
		return nil, fmt.Errorf("TIFF predictor requires 8 bits per component, got %d", bpc)
	}
	colors := params.colorsOr(1)
	rowSize := params.columnsOr(1) * colors
	if rowSize <= 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of row size %d", len(data), rowSize)
	}

	out := make([]byte, len(data))
	for row := 0; row < len(data)/rowSize; row++ {
		base := row * rowSize
		for col := 0; col < rowSize; col++ {
			i := base + col
			if col < colors {
				out[i] = data[i]
			} else {
				out[i] = data[i] + out[i-colors]
			}
		}
	}
	return out, nil
}

// pngPredict undoes the PNG row predictors. Every row carries a leading
// predictor byte (0=None, 1=Sub, 2=Up, 3=Average, 4=Paeth) which is
// stripped from the output.
func pngPredict(data []byte, params Params) ([]byte, error) {
	if bpc := params.bitsOr(8); bpc != 8 {
		return nil, fmt.Errorf("PNG predictor requires 8 bits per component, got %d", bpc)
	}
	bpp := params.colorsOr(1)
	rowLen := params.columnsOr(1) * bpp
	stride := rowLen + 1
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of row size %d", len(data), stride)
	}

	rows := len(data) / stride
	out := make([]byte, rows*rowLen)
	for row := 0; row < rows; row++ {
		tag := data[row*stride]
		src := data[row*stride+1 : (row+1)*stride]
		dst := out[row*rowLen : (row+1)*rowLen]
		var prev []byte
		if row > 0 {
			prev = out[(row-1)*rowLen : row*rowLen]
		}
		if err := unfilterPNGRow(dst, src, prev, tag, bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}
	return out, nil
}

// unfilterPNGRow reconstructs one row in place from its filtered bytes.
func unfilterPNGRow(dst, src, prev []byte, tag byte, bpp int) error {
	for i := range src {
		var left, up, upLeft byte
		if i >= bpp {
			left = dst[i-bpp]
		}
		if prev != nil {
			up = prev[i]
			if i >= bpp {
				upLeft = prev[i-bpp]
			}
		}
		var predicted byte
		switch tag {
		case 0:
		case 1:
			predicted = left
		case 2:
			predicted = up
		case 3:
			predicted = byte((int(left) + int(up)) / 2)
		case 4:
			predicted = paeth(left, up, upLeft)
		default:
			return fmt.Errorf("unknown PNG predictor tag: %d", tag)
		}
		dst[i] = src[i] + predicted
	}
	return nil
}

// paeth picks the neighbor closest to the linear prediction, as defined
// by the PNG specification.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
