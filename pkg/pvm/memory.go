package pvm

import "sort"

const wordSize = 8

// Memory is the PVM's linear byte-addressable heap: a flat buffer plus two
// auxiliary address->size maps (in_use, free), grounded on the reference
// allocator (first-fit over an ordered free list, four-case coalescing on
// deallocate).
type Memory struct {
	buf   []byte
	inUse map[uint64]uint64
	free  map[uint64]uint64
}

// NewMemory allocates a heap of size bytes, entirely free.
func NewMemory(size uint64) *Memory {
	m := &Memory{
		buf:   make([]byte, size),
		inUse: map[uint64]uint64{},
		free:  map[uint64]uint64{},
	}
	if size > 0 {
		m.free[0] = size
	}
	return m
}

// Len returns the size in bytes the given address was allocated with, or
// an invalid-address error if it is not currently in use.
func (m *Memory) Len(addr uint64) (uint64, error) {
	size, ok := m.inUse[addr]
	if !ok {
		return 0, NewMemoryError(ErrInvalidAddress)
	}
	return size, nil
}

// sortedFreeAddrs returns the keys of m.free in ascending order.
func (m *Memory) sortedFreeAddrs() []uint64 {
	addrs := make([]uint64, 0, len(m.free))
	for a := range m.free {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Allocate finds the first free interval of at least n bytes, first-fit,
// splits off any remainder back into the free list, and returns the
// allocated address.
func (m *Memory) Allocate(n uint64) (uint64, error) {
	if n == 0 {
		return 0, NewMemoryError(ErrCannotAllocateZeroBytes)
	}

	for _, addr := range m.sortedFreeAddrs() {
		size := m.free[addr]
		if size < n {
			continue
		}
		delete(m.free, addr)
		if remainder := size - n; remainder > 0 {
			m.free[addr+n] = remainder
		}
		m.inUse[addr] = n
		return addr, nil
	}
	return 0, NewMemoryError(ErrOutOfMemory)
}

// Deallocate frees the allocation at addr, coalescing with any adjacent
// free intervals. A no-op if addr is not currently allocated.
func (m *Memory) Deallocate(addr uint64) {
	size, ok := m.inUse[addr]
	if !ok {
		return
	}
	delete(m.inUse, addr)

	var prevAddr, prevSize uint64
	hasPrev := false
	var nextSize uint64
	hasNext := false

	for a, s := range m.free {
		if a+s == addr {
			prevAddr, prevSize = a, s
			hasPrev = true
		}
		if a == addr+size {
			nextSize = s
			hasNext = true
		}
	}

	switch {
	case hasPrev && hasNext:
		delete(m.free, prevAddr)
		delete(m.free, addr+size)
		m.free[prevAddr] = prevSize + size + nextSize
	case hasPrev:
		delete(m.free, prevAddr)
		m.free[prevAddr] = prevSize + size
	case hasNext:
		delete(m.free, addr+size)
		m.free[addr] = size + nextSize
	default:
		m.free[addr] = size
	}
}

func (m *Memory) checkBounds(addr, length uint64) error {
	if addr+length > uint64(len(m.buf)) || addr+length < addr {
		return NewMemoryError(ErrAddressOutOfBounds)
	}
	return nil
}

// LoadByte reads a single byte at addr.
func (m *Memory) LoadByte(addr uint64) (byte, error) {
	if err := m.checkBounds(addr, 1); err != nil {
		return 0, err
	}
	return m.buf[addr], nil
}

// StoreByte writes a single byte at addr.
func (m *Memory) StoreByte(addr uint64, v byte) error {
	if err := m.checkBounds(addr, 1); err != nil {
		return err
	}
	m.buf[addr] = v
	return nil
}

// Load reads an 8-byte big-endian word at addr.
func (m *Memory) Load(addr uint64) (uint64, error) {
	if err := m.checkBounds(addr, wordSize); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < wordSize; i++ {
		v = v<<8 | uint64(m.buf[addr+uint64(i)])
	}
	return v, nil
}

// Store writes an 8-byte big-endian word at addr.
func (m *Memory) Store(addr uint64, v uint64) error {
	if err := m.checkBounds(addr, wordSize); err != nil {
		return err
	}
	for i := 0; i < wordSize; i++ {
		shift := uint(8 * (wordSize - 1 - i))
		m.buf[addr+uint64(i)] = byte(v >> shift)
	}
	return nil
}

// GetBuffer returns a slice view over n bytes starting at addr, used by
// the `read` instruction to fill a heap allocation directly from stdin.
func (m *Memory) GetBuffer(addr, n uint64) ([]byte, error) {
	if err := m.checkBounds(addr, n); err != nil {
		return nil, err
	}
	return m.buf[addr : addr+n], nil
}

// Size returns the total size of the underlying buffer.
func (m *Memory) Size() uint64 { return uint64(len(m.buf)) }
