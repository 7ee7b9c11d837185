// Package wire implements the fixed-width binary table protocol: an 8x15
// matrix of big-endian uint32 cells exchanged synchronously between the
// arbiter and each agent, plus the card <-> table row conversions.
package wire

import (
	"encoding/binary"
	"fmt"
)

const (
	Rows      = 8
	Cols      = 15
	CellCount = Rows * Cols
	FrameSize = CellCount * 4 // 480 bytes
)

// Table is the canonical wire payload: a flat buffer of 120 u32 cells
// addressed as an 8x15 matrix, with helper accessors for row/column access.
type Table struct {
	cells [CellCount]uint32
}

func index(row, col int) int { return row*Cols + col }

// Get returns the cell at (row, col). Row and column are not checked
// separately: a column past Cols-1 reads into the next row, and only an
// index outside the 120-cell buffer panics.
func (t *Table) Get(row, col int) uint32 {
	return t.cells[index(row, col)]
}

// Set stores v at (row, col). Negative values clamp to zero, matching the
// legacy C reference's encoding convention.
func (t *Table) Set(row, col int, v int32) {
	if v < 0 {
		v = 0
	}
	t.cells[index(row, col)] = uint32(v)
}

// SetU stores v directly as an already-non-negative cell value.
func (t *Table) SetU(row, col int, v uint32) {
	t.cells[index(row, col)] = v
}

// Clear zeroes every cell.
func (t *Table) Clear() {
	for i := range t.cells {
		t.cells[i] = 0
	}
}

// EncodeTable serialises t into a 480-byte big-endian frame.
func EncodeTable(t *Table) []byte {
	buf := make([]byte, FrameSize)
	for i, v := range t.cells {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], v)
	}
	return buf
}

// DecodeTable parses a 480-byte big-endian frame into a Table. A buffer of
// the wrong length is a fatal framing error.
func DecodeTable(buf []byte) (*Table, error) {
	if len(buf) != FrameSize {
		return nil, fmt.Errorf("wire: short frame: got %d bytes, want %d", len(buf), FrameSize)
	}
	t := &Table{}
	for i := range t.cells {
		t.cells[i] = binary.BigEndian.Uint32(buf[i*4 : i*4+4])
	}
	return t, nil
}

// EncodeU32 serialises a single big-endian u32 response/game-state code.
func EncodeU32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

// DecodeU32 parses a 4-byte big-endian u32.
func DecodeU32(buf []byte) (uint32, error) {
	if len(buf) != 4 {
		return 0, fmt.Errorf("wire: short int frame: got %d bytes, want 4", len(buf))
	}
	return binary.BigEndian.Uint32(buf), nil
}
