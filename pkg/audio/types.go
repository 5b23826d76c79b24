package audio

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type SampleRate = types.SampleRate
type Channel = types.Channel
type SampleFormat = types.SampleFormat
type StreamConfig = types.StreamConfig
type Device = types.Device
type DeviceID = types.DeviceID
type DeviceKind = types.DeviceKind
type CaptureStream = types.CaptureStream
type Host = types.Host

const (
	SampleFormatI8  = types.SampleFormatI8
	SampleFormatI16 = types.SampleFormatI16
	SampleFormatI32 = types.SampleFormatI32
	SampleFormatI64 = types.SampleFormatI64
	SampleFormatU8  = types.SampleFormatU8
	SampleFormatU16 = types.SampleFormatU16
	SampleFormatU32 = types.SampleFormatU32
	SampleFormatU64 = types.SampleFormatU64
	SampleFormatF32 = types.SampleFormatF32
	SampleFormatF64 = types.SampleFormatF64

	DeviceKindInput  = types.DeviceKindInput
	DeviceKindOutput = types.DeviceKindOutput
)
