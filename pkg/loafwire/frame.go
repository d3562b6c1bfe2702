// Package loafwire frames non-empty sequences of fixed-size numbers.
//
// Frame layout:
//
//	'L' 'F' | version | comp flag | varint count | varint elem size | payload | crc32
//
// The payload holds count little-endian elements, compressed as named by
// the comp flag. The CRC32 (IEEE) covers everything after the magic and
// before the checksum. Decoding yields a loaf.OwnedLoafN, so a frame with
// fewer than N elements is rejected with loaf.ErrInsufficientLength.
package loafwire

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"golang.org/x/exp/constraints"
	"golang.org/x/sys/cpu"

	"github.com/rawbytedev/loaf"
	"github.com/rawbytedev/loaf/internal/common"
)

const (
	Magic0  = 'L'
	Magic1  = 'F'
	Version = 1

	CompRaw  = 0x00
	CompZstd = 0x04

	preambleSize = 4
	crcSize      = 4
)

var (
	ErrBadMagic           = errors.New("loafwire: not a loaf frame")
	ErrVersion            = errors.New("loafwire: unsupported version")
	ErrTruncated          = errors.New("loafwire: truncated frame")
	ErrCRCMismatch        = errors.New("loafwire: crc mismatch")
	ErrElemSize           = errors.New("loafwire: element size mismatch")
	ErrUnknownCompression = errors.New("loafwire: unknown compression")
	ErrTooLarge           = errors.New("loafwire: payload exceeds limit")
)

// Fixed is the set of element types with a fixed little-endian encoding.
type Fixed interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		constraints.Float
}

// Encode serializes the elements of l into a new frame.
func Encode[T Fixed, N loaf.Prefix](l loaf.LoafN[T, N], opts Options) ([]byte, error) {
	flag, err := opts.Compression.flag()
	if err != nil {
		return nil, err
	}
	elems := l.Slice()
	payload, err := compressData(flag, littleEndian(elems))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, preambleSize+20+len(payload)+crcSize)
	buf = append(buf, Magic0, Magic1, Version, flag)
	buf = common.WriteVarUintTo(buf, uint64(len(elems)))
	buf = common.WriteVarUintTo(buf, uint64(common.SizeOf[T]()))
	buf = append(buf, payload...)

	// checksum over everything after the magic
	crc := crc32.ChecksumIEEE(buf[2:])
	return binary.LittleEndian.AppendUint32(buf, crc), nil
}

// Decode parses a frame into an OwnedLoafN. With opts.ZeroCopy on a
// little-endian host, an uncompressed payload is aliased rather than
// copied, so the result shares memory with data.
func Decode[N loaf.Prefix, T Fixed](data []byte, opts Options) (*loaf.OwnedLoafN[T, N], error) {
	if len(data) < preambleSize+2+crcSize {
		return nil, ErrTruncated
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return nil, ErrBadMagic
	}
	if data[2] != Version {
		return nil, ErrVersion
	}
	body := data[:len(data)-crcSize]
	want := binary.LittleEndian.Uint32(data[len(data)-crcSize:])
	if crc32.ChecksumIEEE(body[2:]) != want {
		return nil, ErrCRCMismatch
	}
	flag := body[3]
	cursor := preambleSize

	count, n := common.ReadVarUint(body[cursor:])
	if n == 0 {
		return nil, ErrTruncated
	}
	cursor += n
	size, n := common.ReadVarUint(body[cursor:])
	if n == 0 {
		return nil, ErrTruncated
	}
	cursor += n
	elemSize := common.SizeOf[T]()
	if size != uint64(elemSize) {
		return nil, ErrElemSize
	}
	var prefix N
	if need := prefix.Len(); count < uint64(need) {
		return nil, &loaf.LengthError{Op: "Decode", Have: int(count), Need: need}
	}

	if count > opts.maxPayload()/size {
		return nil, ErrTooLarge
	}
	raw, owned, err := decompressData(flag, body[cursor:], count*size)
	if err != nil {
		return nil, err
	}
	if count > uint64(len(raw)) || uint64(len(raw)) != count*size {
		return nil, ErrTruncated
	}

	var elems []T
	switch {
	case !cpu.IsBigEndian && (owned || opts.ZeroCopy) && (!opts.CheckAlignment || common.Aligned[T](raw)):
		elems = common.Alias[T](raw, int(count))
	case !cpu.IsBigEndian:
		elems = make([]T, count)
		copy(common.Bytes(elems), raw)
	default:
		elems = make([]T, count)
		if _, err := binary.Decode(raw, binary.LittleEndian, elems); err != nil {
			return nil, err
		}
	}
	return loaf.FromBoxN[N](loaf.BoxFromSlice(elems))
}

// littleEndian returns the little-endian bytes of elems, aliasing them
// when the host order already matches.
func littleEndian[T Fixed](elems []T) []byte {
	if !cpu.IsBigEndian {
		return common.Bytes(elems)
	}
	out, _ := binary.Append(nil, binary.LittleEndian, elems)
	return out
}
