package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audiorecorder/pkg/audio/registry"
)

var ErrNoBackend = errors.New("no audio backend is available")

var (
	lastSuccessfulHostFactory       registry.HostFactory
	lastSuccessfulHostFactoryLocker sync.Mutex
)

func getLastSuccessfulHostFactory() registry.HostFactory {
	lastSuccessfulHostFactoryLocker.Lock()
	defer lastSuccessfulHostFactoryLocker.Unlock()
	return lastSuccessfulHostFactory
}

func setLastSuccessfulHostFactory(factory registry.HostFactory) {
	lastSuccessfulHostFactoryLocker.Lock()
	defer lastSuccessfulHostFactoryLocker.Unlock()
	lastSuccessfulHostFactory = factory
}

// NewHostAuto returns the first registered backend (by priority) that
// initializes and answers a ping. If none does, a HostDummy is returned,
// which fails every device lookup.
func NewHostAuto(
	ctx context.Context,
) Host {
	factory := getLastSuccessfulHostFactory()
	if factory != nil {
		host, err := newPingedHost(ctx, factory)
		if err == nil {
			return host
		}
		logger.Debugf(ctx, "the last successful backend '%s' is not usable anymore: %v", factory.Name(), err)
	}

	var mErr *multierror.Error
	for _, factory := range registry.HostFactories() {
		host, err := newPingedHost(ctx, factory)
		logger.Debugf(ctx, "initializing audio backend '%s' result is %v", factory.Name(), err)
		if err != nil {
			mErr = multierror.Append(mErr, err)
			continue
		}
		setLastSuccessfulHostFactory(factory)
		return host
	}

	logger.Infof(ctx, "was unable to initialize any audio backend: %v", mErr.ErrorOrNil())
	return HostDummy{Err: mErr.ErrorOrNil()}
}

// NewHost initializes the backend registered under the given name.
func NewHost(
	ctx context.Context,
	name string,
) (Host, error) {
	factory := registry.HostFactoryByName(name)
	if factory == nil {
		return nil, fmt.Errorf("backend '%s' is not registered", name)
	}
	return newPingedHost(ctx, factory)
}

func newPingedHost(
	ctx context.Context,
	factory registry.HostFactory,
) (_ret Host, _err error) {
	host, err := factory.NewHost()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize '%s': %w", factory.Name(), err)
	}

	err = host.Ping(ctx)
	logger.Debugf(ctx, "pinging audio backend '%s' result is %v", factory.Name(), err)
	if err != nil {
		if closeErr := host.Close(); closeErr != nil {
			logger.Warnf(ctx, "unable to close '%s': %v", factory.Name(), closeErr)
		}
		return nil, fmt.Errorf("unable to ping '%s': %w", factory.Name(), err)
	}
	return host, nil
}
