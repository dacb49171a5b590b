package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/doeshing/actionguard/internal/application/check"
	configapp "github.com/doeshing/actionguard/internal/application/config"
	"github.com/doeshing/actionguard/internal/application/doctor"
	"github.com/doeshing/actionguard/internal/domain"
	"github.com/doeshing/actionguard/internal/infrastructure/catalog"
	"github.com/doeshing/actionguard/internal/infrastructure/config"
	"github.com/doeshing/actionguard/internal/infrastructure/history"
	"github.com/doeshing/actionguard/internal/infrastructure/security"
	"github.com/doeshing/actionguard/internal/pkg/filesystem"
	"github.com/doeshing/actionguard/internal/pkg/logger"
	"github.com/doeshing/actionguard/internal/ports"
)

// Options controls how the container is built.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Catalog        ports.SpecCatalog
	Validator      ports.InputValidator
	CheckService   *check.Service
	DoctorService  *doctor.Service
	// AuditStore is nil unless audit.enabled is set; see OpenAuditStore.
	AuditStore ports.AuditRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, opts.Verbose)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(catalog.Options{
		File:         cfg.Catalog.File,
		ManifestsDir: cfg.Catalog.ManifestsDir,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("load input catalog: %w", err)
	}

	validator, err := security.NewValidator(cat, cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	container := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Catalog:        cat,
		Validator:      validator,
	}
	if cfg.Audit.Enabled {
		container.AuditStore = container.OpenAuditStore()
	}

	container.CheckService = &check.Service{
		Validator: validator,
		Audit:     container.AuditStore,
		Logger:    log,
		Workers:   cfg.Batch.Workers,
		RunID:     uuid.NewString(),
	}
	container.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Catalog:        cat,
		Validator:      validator,
		Audit:          container.AuditStore,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"inputs":  cat.Len(),
		"audit":   cfg.Audit.Enabled,
		"workers": cfg.Batch.Workers,
	})
	return container, nil
}

// OpenAuditStore returns the audit store at audit.path, opening it on first use.
func (c *Container) OpenAuditStore() ports.AuditRepository {
	if c.AuditStore == nil {
		c.AuditStore = history.NewSQLiteStore(filesystem.ExpandPath(c.Config.Audit.Path))
	}
	return c.AuditStore
}

// Close flushes the logger and releases the audit store.
func (c *Container) Close() error {
	if closer, ok := c.AuditStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if c.Logger != nil {
		return c.Logger.Sync()
	}
	return nil
}
