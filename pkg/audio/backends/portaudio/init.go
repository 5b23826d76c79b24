package portaudio

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/registry"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const (
	Priority = 60
)

func init() {
	registry.RegisterHostFactory(Priority, HostFactory{})
}

type HostFactory struct{}

func (HostFactory) Name() string {
	return "portaudio"
}

func (HostFactory) NewHost() (types.Host, error) {
	return NewHost()
}
