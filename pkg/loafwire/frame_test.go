package loafwire

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/cpu"

	"github.com/rawbytedev/loaf"
)

type celsius float32

func encodeSlice[T Fixed](t testing.TB, s []T, opts Options) []byte {
	l, ok := loaf.FromSlice(s)
	require.True(t, ok)
	data, err := Encode(l, opts)
	require.NoError(t, err)
	return data
}

func TestRoundTripCompression(t *testing.T) {
	for _, c := range []Compression{"", CompressionRaw, CompressionZstd} {
		t.Run(string(c), func(t *testing.T) {
			opts := Options{Compression: c}
			in := []int32{-5, 0, 7, 1 << 20, -1 << 30}
			res, err := Decode[loaf.One, int32](encodeSlice(t, in, opts), opts)
			require.NoError(t, err)
			assert.Equal(t, in, res.Slice())
			assert.Equal(t, int32(-5), res.First())
			assert.Equal(t, int32(-1<<30), res.Last())
		})
	}
}

func TestRoundTripTypes(t *testing.T) {
	f64 := []float64{1.5, -2.25, 1e300}
	res, err := Decode[loaf.Two, float64](encodeSlice(t, f64, Options{}), Options{})
	require.NoError(t, err)
	assert.Equal(t, f64, res.Slice())
	assert.Equal(t, []float64{1.5, -2.25}, res.Head())

	temps := []celsius{21.5, 19}
	got, err := Decode[loaf.One, celsius](encodeSlice(t, temps, Options{Compression: CompressionZstd}), Options{})
	require.NoError(t, err)
	assert.Equal(t, temps, got.Slice())
}

func TestRoundTripProperty(t *testing.T) {
	condition := func(s []int16, zstd bool) bool {
		l, ok := loaf.FromSlice(s)
		if !ok {
			return true
		}
		opts := Options{ZeroCopy: true}
		if zstd {
			opts.Compression = CompressionZstd
		}
		data, err := Encode(l, opts)
		require.NoError(t, err)
		res, err := Decode[loaf.One, int16](data, opts)
		require.NoError(t, err)
		return assert.ObjectsAreEqual(s, res.Slice())
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestDecodeRejectsShortFrame(t *testing.T) {
	data := encodeSlice(t, []uint32{9}, Options{})
	_, err := Decode[loaf.Two, uint32](data, Options{})
	require.ErrorIs(t, err, loaf.ErrInsufficientLength)

	_, err = Decode[loaf.One, uint32](data, Options{})
	require.NoError(t, err)
}

func TestDecodeErrors(t *testing.T) {
	data := encodeSlice(t, []uint32{1, 2, 3}, Options{})

	corrupt := append([]byte(nil), data...)
	corrupt[len(corrupt)-6] ^= 0xFF
	_, err := Decode[loaf.One, uint32](corrupt, Options{})
	require.ErrorIs(t, err, ErrCRCMismatch)

	bad := append([]byte(nil), data...)
	bad[0] = 'X'
	_, err = Decode[loaf.One, uint32](bad, Options{})
	require.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode[loaf.One, uint64](data, Options{})
	require.ErrorIs(t, err, ErrElemSize)

	_, err = Decode[loaf.One, uint32](data[:5], Options{})
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Encode(loaf.Loaf[uint32]{}, Options{Compression: "lz4"})
	require.ErrorIs(t, err, ErrUnknownCompression)
}

func TestDecodeZeroCopyAliasesInput(t *testing.T) {
	if cpu.IsBigEndian {
		t.Skip("zero-copy decode needs a little-endian host")
	}
	data := encodeSlice(t, []uint16{1, 2, 3}, Options{})
	opts := Options{ZeroCopy: true, CheckAlignment: true}
	res, err := Decode[loaf.One, uint16](data, opts)
	require.NoError(t, err)

	start := uintptr(unsafe.Pointer(&data[0]))
	p := uintptr(unsafe.Pointer(&res.Slice()[0]))
	assert.True(t, p >= start && p < start+uintptr(len(data)))

	// payload starts after magic, version, flag and two one-byte varints
	data[6] = 0x2A
	data[7] = 0
	assert.Equal(t, uint16(42), res.First())
}

func TestDecodeCopiesMisaligned(t *testing.T) {
	if cpu.IsBigEndian {
		t.Skip("zero-copy decode needs a little-endian host")
	}
	data := encodeSlice(t, []int64{1, 2}, Options{})
	res, err := Decode[loaf.One, int64](data, Options{ZeroCopy: true, CheckAlignment: true})
	require.NoError(t, err)
	data[6] = 0x7F
	assert.Equal(t, int64(1), res.First())

	copied, err := Decode[loaf.One, int64](encodeSlice(t, []int64{1, 2}, Options{}), Options{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, copied.Slice())
}

// rawFrame assembles a frame around an arbitrary header and payload.
func rawFrame(flag byte, count, size uint64, payload []byte) []byte {
	buf := []byte{Magic0, Magic1, Version, flag}
	buf = binary.AppendUvarint(buf, count)
	buf = binary.AppendUvarint(buf, size)
	buf = append(buf, payload...)
	return binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf[2:]))
}

func TestDecodeBoundsDecompression(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	bomb := enc.EncodeAll(make([]byte, 4<<20), nil)
	require.NoError(t, enc.Close())
	data := rawFrame(CompZstd, 1, 1, bomb)
	require.Less(t, len(data), 64<<10)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = Decode[loaf.One, uint8](data, Options{})
	runtime.ReadMemStats(&after)
	require.ErrorIs(t, err, ErrTruncated)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestDecodeMaxPayload(t *testing.T) {
	_, err := Decode[loaf.One, uint32](rawFrame(CompRaw, 1<<40, 4, []byte{1, 2, 3, 4}), Options{})
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = Decode[loaf.One, uint32](rawFrame(CompZstd, 1<<40, 4, nil), Options{})
	require.ErrorIs(t, err, ErrTooLarge)

	data := encodeSlice(t, []uint32{1, 2, 3}, Options{Compression: CompressionZstd})
	_, err = Decode[loaf.One, uint32](data, Options{MaxPayload: 8})
	require.ErrorIs(t, err, ErrTooLarge)
	res, err := Decode[loaf.One, uint32](data, Options{MaxPayload: 12})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, res.Slice())
}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions([]byte("zero_copy: true\ncheck_alignment: true\ncompression: zstd\nmax_payload: 4096\n"))
	require.NoError(t, err)
	assert.Equal(t, Options{ZeroCopy: true, CheckAlignment: true, Compression: CompressionZstd, MaxPayload: 4096}, o)

	_, err = ParseOptions([]byte("compression: lz4\n"))
	require.ErrorIs(t, err, ErrUnknownCompression)

	_, err = ParseOptions([]byte("zero_copy: [\n"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "opts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression: raw\n"), 0o600))
	o, err = LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, CompressionRaw, o.Compression)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func FuzzDecode(f *testing.F) {
	f.Add(encodeSlice(f, []int32{1, 2, 3}, Options{}))
	f.Add(encodeSlice(f, []int32{4}, Options{Compression: CompressionZstd}))
	f.Add([]byte("LF"))
	f.Fuzz(func(t *testing.T, data []byte) {
		res, err := Decode[loaf.One, int32](data, Options{})
		if err != nil {
			return
		}
		require.GreaterOrEqual(t, res.Len(), 1)
	})
}

func BenchmarkEncodeRaw(b *testing.B) {
	s := make([]float64, 256)
	for i := range s {
		s[i] = float64(i) * 0.5
	}
	l, _ := loaf.FromSlice(s)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(l, Options{})
	}
}

func BenchmarkDecodeZeroCopy(b *testing.B) {
	s := make([]uint16, 256)
	data := encodeSlice(b, s, Options{})
	opts := Options{ZeroCopy: true}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode[loaf.One, uint16](data, opts)
	}
}
