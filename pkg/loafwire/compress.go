package loafwire

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encOnce sync.Once
	encoder *zstd.Encoder
	encErr  error
)

func zstdEncoder() (*zstd.Encoder, error) {
	encOnce.Do(func() {
		encoder, encErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	return encoder, encErr
}

// compressData applies the compressor named by flag to raw.
func compressData(flag byte, raw []byte) ([]byte, error) {
	switch flag {
	case CompRaw:
		return raw, nil
	case CompZstd:
		enc, err := zstdEncoder()
		if err != nil {
			return nil, err
		}
		return enc.EncodeAll(raw, nil), nil
	default:
		return nil, ErrUnknownCompression
	}
}

// decompressData reverses compressData. want is the payload size the frame
// header declares; decompression never produces more than that. owned
// reports whether the result is a fresh allocation rather than a subslice
// of payload.
func decompressData(flag byte, payload []byte, want uint64) (raw []byte, owned bool, err error) {
	switch flag {
	case CompRaw:
		return payload, false, nil
	case CompZstd:
		var h zstd.Header
		if err := h.Decode(payload); err != nil {
			return nil, false, err
		}
		if h.HasFCS && h.FrameContentSize != want {
			return nil, false, ErrTruncated
		}
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(max(want, zstd.MinWindowSize)))
		if err != nil {
			return nil, false, err
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(payload, make([]byte, 0, want))
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	default:
		return nil, false, ErrUnknownCompression
	}
}
