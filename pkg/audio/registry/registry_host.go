package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/xaionaro-go/audiorecorder/pkg/audio/types"
)

type HostFactory interface {
	Name() string
	NewHost() (types.Host, error)
}

type hostFactoryWithPriority struct {
	Priority int
	HostFactory
}

var hostFactoryRegistry = map[reflect.Type]hostFactoryWithPriority{}

func RegisterHostFactory(
	priority int,
	hostFactory HostFactory,
) {
	t := reflect.ValueOf(hostFactory).Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if _, ok := hostFactoryRegistry[t]; ok {
		panic(fmt.Errorf("there is already registered a factory of Host of type %v", t))
	}
	for _, existing := range hostFactoryRegistry {
		if existing.Name() == hostFactory.Name() {
			panic(fmt.Errorf("there is already registered a factory of Host with name '%s'", hostFactory.Name()))
		}
	}
	hostFactoryRegistry[t] = hostFactoryWithPriority{
		Priority:    priority,
		HostFactory: hostFactory,
	}
}

// HostFactories returns the registered factories, highest priority first.
func HostFactories() []HostFactory {
	var factoriesWithPriorities []hostFactoryWithPriority
	for _, factory := range hostFactoryRegistry {
		factoriesWithPriorities = append(factoriesWithPriorities, factory)
	}
	sort.Slice(factoriesWithPriorities, func(i, j int) bool {
		if factoriesWithPriorities[i].Priority != factoriesWithPriorities[j].Priority {
			return factoriesWithPriorities[i].Priority > factoriesWithPriorities[j].Priority
		}
		return factoriesWithPriorities[i].Name() < factoriesWithPriorities[j].Name()
	})

	var factories []HostFactory
	for _, factory := range factoriesWithPriorities {
		factories = append(factories, factory.HostFactory)
	}

	return factories
}

func HostFactoryByName(name string) HostFactory {
	for _, factory := range hostFactoryRegistry {
		if factory.Name() == name {
			return factory.HostFactory
		}
	}
	return nil
}
