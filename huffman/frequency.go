package huffman

import "math"

// FrequencyTable holds the occurrence count of every byte value in an input.
type FrequencyTable struct {
	Counts [256]uint64
	Total  uint64
}

// CountFrequencies scans data once and counts each byte value.
// It returns ErrEmptyInput for an empty slice and ErrInputTooLarge when the
// symbol count does not fit the header's signed 32-bit field.
func CountFrequencies(data []byte) (*FrequencyTable, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if uint64(len(data)) > math.MaxInt32 {
		return nil, ErrInputTooLarge
	}

	ft := &FrequencyTable{Total: uint64(len(data))}
	for _, b := range data {
		ft.Counts[b]++
	}
	return ft, nil
}

// Symbols returns the observed symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, 256)
	for i, c := range ft.Counts {
		if c > 0 {
			symbols = append(symbols, byte(i))
		}
	}
	return symbols
}

// Distinct returns the number of distinct observed symbols.
func (ft *FrequencyTable) Distinct() int {
	n := 0
	for _, c := range ft.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}
