package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"

	"github.com/pathlight/careermatch/internal/domain"
)

// Matrix is a dense row-major float32 matrix backing one domain index.
// Row vectors are pre-normalized to unit length by the embedding pipeline
// that produced the file; the engine never re-normalizes.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// Row returns the row-major offset of row r.
func (m Matrix) Row(r int) []float32 {
	return m.Data[r*m.Cols : (r+1)*m.Cols]
}

var npyMagic = []byte("\x93NUMPY")

var shapeRe = regexp.MustCompile(`\(\s*(\d+)\s*,\s*(\d+)\s*\)`)

// ParseMatrix decodes an NPY file into a Matrix.
//
// Layout: byte 6 holds the major format version. For version <= 1 the header
// length is a little-endian uint16 at offset 8 and the header text starts at
// offset 10; for version >= 2 it is a little-endian uint32 at offset 8 with
// text at offset 12. The header text carries the shape as "(rows, cols)" and
// is followed immediately by rows*cols little-endian float32 values.
func ParseMatrix(data []byte) (Matrix, error) {
	if len(data) < 10 {
		return Matrix{}, fmt.Errorf("%w: file shorter than fixed header (%d bytes)",
			domain.ErrMalformedHeader, len(data))
	}
	if !bytes.Equal(data[:6], npyMagic) {
		return Matrix{}, fmt.Errorf("%w: bad magic", domain.ErrMalformedHeader)
	}

	major := data[6]

	var headerLen, headerStart int
	if major <= 1 {
		headerLen = int(binary.LittleEndian.Uint16(data[8:10]))
		headerStart = 10
	} else {
		if len(data) < 12 {
			return Matrix{}, fmt.Errorf("%w: file shorter than v2 header",
				domain.ErrMalformedHeader)
		}
		headerLen = int(binary.LittleEndian.Uint32(data[8:12]))
		headerStart = 12
	}

	if headerStart+headerLen > len(data) {
		return Matrix{}, fmt.Errorf("%w: header length %d exceeds file size",
			domain.ErrMalformedHeader, headerLen)
	}
	headerText := string(data[headerStart : headerStart+headerLen])

	m := shapeRe.FindStringSubmatch(headerText)
	if m == nil {
		return Matrix{}, fmt.Errorf("%w: no shape descriptor in header",
			domain.ErrMalformedHeader)
	}

	var rows, cols int
	if _, err := fmt.Sscanf(m[1], "%d", &rows); err != nil {
		return Matrix{}, fmt.Errorf("%w: rows %q", domain.ErrMalformedHeader, m[1])
	}
	if _, err := fmt.Sscanf(m[2], "%d", &cols); err != nil {
		return Matrix{}, fmt.Errorf("%w: cols %q", domain.ErrMalformedHeader, m[2])
	}

	payload := data[headerStart+headerLen:]
	// rows*cols*4 can overflow for hostile shapes; the product must be
	// checked before it is used as a length.
	if cols > 0 && rows > math.MaxInt/4/cols {
		return Matrix{}, fmt.Errorf("%w: shape (%d, %d) too large", domain.ErrMalformedHeader, rows, cols)
	}
	want := rows * cols * 4
	if len(payload) < want {
		return Matrix{}, fmt.Errorf("%w: need %d payload bytes for shape (%d, %d), have %d",
			domain.ErrTruncatedData, want, rows, cols, len(payload))
	}

	floats := make([]float32, rows*cols)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
	}

	return Matrix{Rows: rows, Cols: cols, Data: floats}, nil
}

// EncodeMatrix serializes a Matrix into NPY version 1.0 bytes. The float
// payload is written bit-exact, so parse/encode round-trips preserve it.
func EncodeMatrix(m Matrix) ([]byte, error) {
	if len(m.Data) != m.Rows*m.Cols {
		return nil, fmt.Errorf("matrix data length %d does not match shape (%d, %d)",
			len(m.Data), m.Rows, m.Cols)
	}

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }",
		m.Rows, m.Cols)
	// Pad so the payload starts at a 64-byte boundary, per the NPY spec.
	total := 10 + len(header) + 1
	if pad := (64 - total%64) % 64; pad > 0 {
		header += string(bytes.Repeat([]byte{' '}, pad))
	}
	header += "\n"

	buf := make([]byte, 0, 10+len(header)+len(m.Data)*4)
	buf = append(buf, npyMagic...)
	buf = append(buf, 1, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(header)))
	buf = append(buf, header...)
	for _, f := range m.Data {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf, nil
}
