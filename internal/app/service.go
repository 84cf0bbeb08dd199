package app

import (
	"time"

	"reqtool/internal/adapters"
	"reqtool/internal/ports"
)

type Service struct {
	Manifests   ports.ManifestSourcePort
	Files       ports.FileStorePort
	HookConfigs ports.HookConfigPort
	Watcher     ports.WatchPort
	Clock       func() time.Time
}

func NewService() Service {
	return Service{
		Manifests:   adapters.NewManifestFileAdapter(),
		Files:       adapters.NewFileStoreAdapter(),
		HookConfigs: adapters.NewPrecommitFileAdapter(),
		Watcher:     adapters.NewFSWatcherAdapter(),
		Clock:       time.Now,
	}
}

// buildVersionSource picks the version source for lock and outdated
// runs: a file index when one is configured, the PyPI JSON API
// otherwise.
func buildVersionSource(indexPath string, pypiURL string, timeoutSec int, retries int, retryDelayMs int) ports.VersionSourcePort {
	if indexPath != "" {
		return adapters.NewVersionIndexFileAdapter(indexPath)
	}
	return adapters.NewPyPIIndexAdapter(pypiURL, timeoutSec, retries, retryDelayMs)
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
