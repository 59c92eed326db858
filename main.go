// main is the entry point for the gitrecap CLI.
package main

import (
	"github.com/gitrecap/gitrecap/cmd"
	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/internal/iostore"
)

func main() {
	// Stores are initialized lazily by command setup; the manager pointer is
	// stable, so it can be handed to the command layer up front.
	cmd.SetStoreManager(iostore.Manager)

	err := cmd.Execute()

	// Close explicitly instead of deferring; the fatal path below exits the
	// process and would skip a defer.
	iostore.CloseStores()

	if err != nil {
		contract.LogFatal("Recap failed", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogFatal("Failed to stop profiling", err)
	}
}
