// main is the entry point for the gitfolio CLI.
package main

import (
	"github.com/zarmaks/gitfolio/cmd"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/iocache"
)

func main() {
	// Close database connections when the process exits
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
