// Package conv holds the checked integer conversions and size arithmetic
// shared by the containers.
//
// Positions are int throughout seqbuf. The bitmap libraries index with
// uint32 and uint, and the memory budget counts int64 bytes; every crossing
// between those domains goes through this package and reports overflow as an
// error instead of wrapping.
package conv
