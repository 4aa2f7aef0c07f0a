package main

import (
	containerconfig "github.com/arx-os/mg2container/internal/config"
)

func storageConfigFor(dir string) containerconfig.Storage {
	return containerconfig.Storage{
		Backend:   "local",
		LocalPath: dir,
	}
}
