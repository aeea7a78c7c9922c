// main is the entry point for the uatpulse CLI.
package main

import (
	"github.com/huangsam/uatpulse/cmd"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	iocache.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
