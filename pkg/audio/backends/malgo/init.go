package malgo

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/registry"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

const (
	Priority = 80
)

func init() {
	registry.RegisterHostFactory(Priority, HostFactory{})
}

type HostFactory struct{}

func (HostFactory) Name() string {
	return "malgo"
}

func (HostFactory) NewHost() (types.Host, error) {
	return NewHost()
}
