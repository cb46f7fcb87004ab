package main

import (
	"log/slog"

	"github.com/sutapaslibrary/library-server/internal/config"
	"github.com/sutapaslibrary/library-server/internal/kv"
)

// storageOptions override the server configuration.
type storageOptions struct {
	driver   string
	dataPath string
}

// open loads the server configuration, applies the overrides and opens the
// storage it names.
func (o *storageOptions) open() (kv.Storage, error) {
	var args []string
	if o.driver != "" {
		args = append(args, "-storage-driver", o.driver)
	}
	if o.dataPath != "" {
		args = append(args, "-data-path", o.dataPath)
	}

	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	return kv.Open(cfg.Storage.Driver, cfg.Storage.Path(), slog.New(slog.DiscardHandler))
}
