package synthetic

import (
	"github.com/xaionaro-go/audiorecorder/pkg/audio/registry"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

// Priority is the lowest one: the synthetic host is only picked
// automatically when no real backend is usable.
const (
	Priority = -100
)

func init() {
	registry.RegisterHostFactory(Priority, HostFactory{})
}

type HostFactory struct{}

func (HostFactory) Name() string {
	return "synthetic"
}

func (HostFactory) NewHost() (types.Host, error) {
	return NewHost(DefaultSources()...), nil
}
