package cpu

import (
	"iter"
)

const (
	MEMORY_SIZE = 256 // Number of memory bus cells.
)

// Memory is the linear memory bus.
type Memory struct {
	Cell [MEMORY_SIZE]int
}

func (mem *Memory) check(address int) (err error) {
	if address < 0 || address >= len(mem.Cell) {
		err = ErrAddress(address)
	}
	return
}

// Read returns the value stored at address.
func (mem *Memory) Read(address int) (value int, err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	value = mem.Cell[address]
	return
}

// Write replaces the value stored at address.
func (mem *Memory) Write(address int, value int) (err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	mem.Cell[address] = value
	return
}

// Reset zeroes all of memory.
func (mem *Memory) Reset() {
	clear(mem.Cell[:])
}

// NonZero iterates over the non-zero cells in ascending address order.
func (mem *Memory) NonZero() iter.Seq2[int, int] {
	return func(yield func(address int, value int) bool) {
		for address, value := range mem.Cell {
			if value == 0 {
				continue
			}
			if !yield(address, value) {
				return
			}
		}
	}
}
