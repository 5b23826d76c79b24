package pulseaudio

import (
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// pulseWriter forwards whole frames to the data callback, keeping a
// partial trailing frame until the next write.
type pulseWriter struct {
	pulseFormat byte
	frameSize   int
	onData      types.DataCallback
	pending     []byte
}

func newPulseWriter(cfg types.StreamConfig, onData types.DataCallback) (*pulseWriter, error) {
	var pulseFormat byte
	switch cfg.SampleFormat {
	case types.SampleFormatU8:
		pulseFormat = proto.FormatUint8
	case types.SampleFormatI16:
		pulseFormat = proto.FormatInt16LE
	case types.SampleFormatI32:
		pulseFormat = proto.FormatInt32LE
	case types.SampleFormatF32:
		pulseFormat = proto.FormatFloat32LE
	default:
		return nil, fmt.Errorf("received an unexpected format: %v", cfg.SampleFormat)
	}
	frameSize := int(cfg.BytesPerFrame())
	if frameSize == 0 {
		return nil, fmt.Errorf("invalid stream config: %s", cfg)
	}
	return &pulseWriter{
		pulseFormat: pulseFormat,
		frameSize:   frameSize,
		onData:      onData,
	}, nil
}

var _ pulse.Writer = (*pulseWriter)(nil)

func (w *pulseWriter) Format() byte {
	return w.pulseFormat
}

func (w *pulseWriter) Write(p []byte) (int, error) {
	n := len(p)
	if len(w.pending) > 0 {
		need := w.frameSize - len(w.pending)
		if len(p) < need {
			w.pending = append(w.pending, p...)
			return n, nil
		}
		w.pending = append(w.pending, p[:need]...)
		w.onData(w.pending)
		w.pending = w.pending[:0]
		p = p[need:]
	}

	whole := len(p) / w.frameSize * w.frameSize
	if whole > 0 {
		w.onData(p[:whole])
	}
	w.pending = append(w.pending, p[whole:]...)
	return n, nil
}
