package pulseaudio

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/registry"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const (
	Priority = 100
)

func init() {
	registry.RegisterHostFactory(Priority, HostFactory{})
}

type HostFactory struct{}

func (HostFactory) Name() string {
	return "pulseaudio"
}

func (HostFactory) NewHost() (types.Host, error) {
	return NewHost()
}
