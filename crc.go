//
// CRC-32 of PNG chunks
//
// PNG spec, CRC algorithm
// https://www.w3.org/TR/2003/REC-PNG-20031110/#D-CRCAppendix
//

package pngq

import "hash"

const crcPolynomial = 0xedb88320 // reflected form of x^32+x^26+...+x+1

var crcTable = makeCRCTable()

// precomputed contribution of each byte value to the CRC register
func makeCRCTable() (t [256]uint32) {
	for n := range t {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = crcPolynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[n] = c
	}
	return
}

// Update returns the result of adding the bytes in b to crc.
// crc is a finished checksum, so Update(Update(0, a), b) == Checksum(a+b).
func Update(crc uint32, b []byte) uint32 {
	c := ^crc
	for _, v := range b {
		c = crcTable[byte(c)^v] ^ (c >> 8)
	}
	return ^c
}

// Checksum returns the CRC-32 of b.
func Checksum(b []byte) uint32 {
	return Update(0, b)
}

type crcDigest struct {
	crc uint32
}

// NewCRC returns a hash.Hash32 computing the PNG CRC-32.
func NewCRC() hash.Hash32 {
	return &crcDigest{}
}

func (d *crcDigest) Size() int      { return 4 }
func (d *crcDigest) BlockSize() int { return 1 }
func (d *crcDigest) Reset()         { d.crc = 0 }
func (d *crcDigest) Sum32() uint32  { return d.crc }

func (d *crcDigest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	return len(p), nil
}

func (d *crcDigest) Sum(in []byte) []byte {
	s := d.crc
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
