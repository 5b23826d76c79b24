package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type dummyHost struct{}

func (dummyHost) Close() error                                              { return nil }
func (dummyHost) Ping(context.Context) error                                { return nil }
func (dummyHost) Devices(context.Context) ([]types.Device, error)           { return nil, nil }
func (dummyHost) DefaultInputDevice(context.Context) (types.Device, error)  { return nil, nil }
func (dummyHost) DefaultOutputDevice(context.Context) (types.Device, error) { return nil, nil }

type factoryLow struct{}

func (factoryLow) Name() string                 { return "test-low" }
func (factoryLow) NewHost() (types.Host, error) { return dummyHost{}, nil }

type factoryHigh struct{}

func (factoryHigh) Name() string                 { return "test-high" }
func (factoryHigh) NewHost() (types.Host, error) { return dummyHost{}, nil }

type factoryDuplicateName struct{}

func (factoryDuplicateName) Name() string                 { return "test-low" }
func (factoryDuplicateName) NewHost() (types.Host, error) { return dummyHost{}, nil }

func TestRegistry(t *testing.T) {
	RegisterHostFactory(-1000, factoryLow{})
	RegisterHostFactory(1000, &factoryHigh{})

	factories := HostFactories()
	require.GreaterOrEqual(t, len(factories), 2)
	assert.Equal(t, "test-high", factories[0].Name())
	assert.Equal(t, "test-low", factories[len(factories)-1].Name())

	require.NotNil(t, HostFactoryByName("test-low"))
	assert.Nil(t, HostFactoryByName("no-such-backend"))

	assert.Panics(t, func() { RegisterHostFactory(0, factoryLow{}) })
	assert.Panics(t, func() { RegisterHostFactory(0, factoryDuplicateName{}) })
}
