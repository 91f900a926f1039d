// Package matrix implements the bit-packed key-down matrix shared by all
// three code-set decoders. It is deliberately sparse: scan codes address
// cells directly (row = code>>3, col = code&7) rather than through a hash,
// trading memory for O(1) addressing on a microcontroller where a 32-byte
// matrix is trivial but a hash table is not.
package matrix

// Rows is the number of matrix rows. Codes without the E0 prefix occupy
// rows 0x00-0x0F; E0-prefixed codes fold into rows 0x10-0x1F by OR-ing the
// high bit into the code before addressing. 32 rows * 8 columns = 256
// addressable cells, most unused.
const Rows = 32

// Cols is the number of columns per row (one bit per column).
const Cols = 8

// Reserved matrix positions for keys with irregular make/break semantics.
// These are scan-code-space addresses, not universal key positions.
const (
	F7          = 0x83
	PrintScreen = 0xFC
	Pause       = 0xFE
)

// Matrix is the ordered sequence of row bitmasks. The zero value is a fully
// cleared matrix, ready for use.
//
// Matrix is not reentrant: per the single-threaded scan model, it is owned
// exclusively by the scan driver and must not be accessed concurrently with
// a decoder call in progress.
type Matrix struct {
	rows [Rows]uint8
}

// row returns the row index for a scan-code-space address.
func row(code uint8) uint8 { return code >> 3 }

// col returns the column index for a scan-code-space address.
func col(code uint8) uint8 { return code & 0x07 }

// Make sets the bit for code if it is clear. Idempotent if already set.
func (m *Matrix) Make(code uint8) {
	r, c := row(code), col(code)
	m.rows[r] |= 1 << c
}

// Break clears the bit for code if it is set. Idempotent if already clear.
func (m *Matrix) Break(code uint8) {
	r, c := row(code), col(code)
	m.rows[r] &^= 1 << c
}

// Clear zeros every row.
func (m *Matrix) Clear() {
	for i := range m.rows {
		m.rows[i] = 0
	}
}

// IsOn reports whether the key at (row, col) is currently held.
func (m *Matrix) IsOn(r, c uint8) bool {
	return m.rows[r]&(1<<c) != 0
}

// IsOnCode reports whether the key addressed by a scan-code-space value is
// currently held.
func (m *Matrix) IsOnCode(code uint8) bool {
	return m.IsOn(row(code), col(code))
}

// GetRow returns the raw bitmask for a single row.
func (m *Matrix) GetRow(r uint8) uint8 {
	return m.rows[r]
}

// KeyCount returns the population count across all rows.
func (m *Matrix) KeyCount() int {
	count := 0
	for _, r := range m.rows {
		count += popcount(r)
	}
	return count
}

func popcount(b uint8) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}
