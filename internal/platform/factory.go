package platform

import (
	"fmt"

	"github.com/aretw0/quicknotes/pkg/adapters/memory"
	"github.com/aretw0/quicknotes/pkg/core"
)

// New wires a repository and the domain service.
//
//	svc, err := quicknotes.New(quicknotes.WithLogger(logger))
func New(opts ...Option) (*core.Service, error) {
	repo, err := Init(opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	svcOpts := []core.ServiceOption{core.WithLogger(o.logger)}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}
	if d, ok := o.config["fuzzy_distance"].(int); ok {
		svcOpts = append(svcOpts, core.WithFuzzyDistance(d))
	}

	service := core.NewService(repo, svcOpts...)
	if o.logger != nil {
		o.logger.Debug("service ready", "adapter", o.adapter, "session", service.Session())
	}
	return service, nil
}

// Init returns the repository selected by the options.
func Init(opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	switch o.adapter {
	case "memory", "":
		return memory.NewRepository(memory.Config{Logger: o.logger}), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
