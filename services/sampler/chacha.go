package sampler

import (
	"encoding/binary"
	"math/bits"
)

const (
	chachaRounds   = 8
	blockWords     = 16
	blocksPerFill  = 4
	bufferWords    = blockWords * blocksPerFill
	pcgMultiplier  = 6364136223846793005
	pcgIncrement   = 11634580027462260723
	keyWords       = 8
	constantSigma0 = 0x61707865 // "expa"
	constantSigma1 = 0x3320646e // "nd 3"
	constantSigma2 = 0x79622d32 // "2-by"
	constantSigma3 = 0x6b206574 // "te k"
)

// ChaCha8 is a deterministic generator built on the ChaCha stream cipher reduced to 8 rounds.
// It uses a 64-bit block counter and a zero 64-bit stream id, and hands out keystream words in
// order, four blocks at a time. The same key always produces the same sequence on every
// platform.
//
// A ChaCha8 must not be shared between goroutines.
type ChaCha8 struct {
	key     [keyWords]uint32
	counter uint64
	buf     [bufferWords]uint32
	index   int
}

var _ Source = (*ChaCha8)(nil)

// NewChaCha8 returns a generator keyed with the given 32 bytes (little-endian words).
func NewChaCha8(seed [32]byte) *ChaCha8 {
	c := &ChaCha8{}
	c.rekey(seed)
	return c
}

// NewChaCha8FromUint64 expands a 64-bit seed into a key using the PCG32 output sequence.
func NewChaCha8FromUint64(seed uint64) *ChaCha8 {
	return NewChaCha8(expandSeed(seed))
}

func expandSeed(state uint64) [32]byte {
	var seed [32]byte
	for i := 0; i < keyWords; i++ {
		state = state*pcgMultiplier + pcgIncrement
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		binary.LittleEndian.PutUint32(seed[i*4:], bits.RotateLeft32(xorshifted, -rot))
	}
	return seed
}

func (c *ChaCha8) rekey(seed [32]byte) {
	for i := range c.key {
		c.key[i] = binary.LittleEndian.Uint32(seed[i*4:])
	}
	c.counter = 0
	c.index = bufferWords
}

// Uint32 returns the next keystream word.
func (c *ChaCha8) Uint32() uint32 {
	if c.index >= bufferWords {
		c.refill()
	}
	v := c.buf[c.index]
	c.index++
	return v
}

// Uint64 returns the next two keystream words, the first one in the low half.
func (c *ChaCha8) Uint64() uint64 {
	switch {
	case c.index < bufferWords-1:
		lo, hi := c.buf[c.index], c.buf[c.index+1]
		c.index += 2
		return uint64(hi)<<32 | uint64(lo)
	case c.index >= bufferWords:
		c.refill()
		c.index = 2
		return uint64(c.buf[1])<<32 | uint64(c.buf[0])
	default:
		// One word left in the buffer.
		lo := c.buf[bufferWords-1]
		c.refill()
		c.index = 1
		return uint64(c.buf[0])<<32 | uint64(lo)
	}
}

func (c *ChaCha8) refill() {
	for b := 0; b < blocksPerFill; b++ {
		c.block(c.counter, c.buf[b*blockWords:(b+1)*blockWords])
		c.counter++
	}
	c.index = 0
}

func (c *ChaCha8) block(counter uint64, out []uint32) {
	in := [blockWords]uint32{
		constantSigma0, constantSigma1, constantSigma2, constantSigma3,
		c.key[0], c.key[1], c.key[2], c.key[3],
		c.key[4], c.key[5], c.key[6], c.key[7],
		uint32(counter), uint32(counter >> 32), 0, 0,
	}
	x := in

	for i := 0; i < chachaRounds; i += 2 {
		// columns
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		// diagonals
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}

	for i := range out {
		out[i] = x[i] + in[i]
	}
}

func quarterRound(x *[blockWords]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 7)
}
