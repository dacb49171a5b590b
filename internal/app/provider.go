package app

import (
	"context"
	"sync"
)

// Provider builds the container on first use so that persistent CLI flags
// are parsed before configuration is read.
type Provider struct {
	Options Options

	once      sync.Once
	container *Container
	err       error
}

// NewProvider returns a provider for opts.
func NewProvider(opts Options) *Provider {
	return &Provider{Options: opts}
}

// Get builds the container once and returns it on every call.
func (p *Provider) Get(ctx context.Context) (*Container, error) {
	p.once.Do(func() {
		p.container, p.err = BuildContainer(ctx, p.Options)
	})
	return p.container, p.err
}

// Close releases the container if it was built.
func (p *Provider) Close() error {
	if p.container == nil {
		return nil
	}
	return p.container.Close()
}
