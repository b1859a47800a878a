package pvm

import "math"

// Int64ToU64 reinterprets an int64 as its raw u64 bit pattern (the
// PVM's universal value representation), grounded on the reference
// to_u64!/from_u64! macro pair.
func Int64ToU64(v int64) uint64 { return uint64(v) }

// U64ToInt64 reverses Int64ToU64 for signed 64-bit integers.
func U64ToInt64(v uint64) int64 { return int64(v) }

// Float64ToU64 reinterprets an IEEE-754 double's bit pattern as u64.
func Float64ToU64(v float64) uint64 { return math.Float64bits(v) }

// U64ToFloat64 reverses Float64ToU64.
func U64ToFloat64(v uint64) float64 { return math.Float64frombits(v) }

// BoolToU64 encodes a bool as 0/1, per the emit table's "Bool encoded as
// 0/1" rule.
func BoolToU64(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// U64ToBool decodes the 0/1 encoding back to bool (nonzero is true).
func U64ToBool(v uint64) bool { return v != 0 }

// U32ToU64 widens a u32 exponent operand (pow's rhs) to u64.
func U32ToU64(v uint32) uint64 { return uint64(v) }

// U64ToU32 narrows a u64 back to u32 for pow's exponent operand.
func U64ToU32(v uint64) uint32 { return uint32(v) }

// ByteToU64 widens a single byte (loadb/storeb's unit) to u64.
func ByteToU64(v byte) uint64 { return uint64(v) }

// U64ToByte narrows a u64 back to a single byte.
func U64ToByte(v uint64) byte { return byte(v) }
