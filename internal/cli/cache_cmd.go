// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cache_cmd.go - Model discovery cache command for the hydra CLI.
//
// Handles "hydra cache":
//   hydra cache status    Cache age, freshness, pair count
//   hydra cache refresh   Force a synchronous discovery sweep
//   hydra cache clear     Delete the cached catalog
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/hydra-tui/internal/catalog"
)

// HandleCache handles the "cache" command.
func HandleCache(args Args) {
	svc, err := catalog.DefaultService()
	if err != nil {
		fmt.Printf("Failed to open catalog: %v\n", err)
		return
	}

	switch args.Subcommand {
	case "", "status":
		cacheStatus(svc)
	case "refresh":
		cacheRefresh(svc, args)
	case "clear":
		cacheClear()
	default:
		fmt.Printf("Unknown cache subcommand: %s\n", args.Subcommand)
		fmt.Println("Usage: hydra cache [status|refresh|clear]")
	}
}

// cacheStatus reports what the on-disk catalog record holds.
func cacheStatus(svc *catalog.Service) {
	fetchedAt, ok := svc.FetchedAt()
	if !ok {
		fmt.Println("Catalog cache: empty (no sweep has completed yet)")
		fmt.Println("Run `hydra cache refresh` to populate it.")
		return
	}

	age := time.Since(fetchedAt)
	state := "fresh"
	if svc.Stale() {
		state = "stale"
	}

	fmt.Printf("Catalog cache: %s\n", state)
	fmt.Printf("  Fetched: %s (%s ago)\n", fetchedAt.Local().Format(time.RFC1123), formatAge(age))
	fmt.Printf("  TTL:     %s\n", catalog.TTL)
	if pairs := svc.CachedPairs(); pairs != nil {
		fmt.Printf("  Pairs:   %d\n", len(pairs))
	}
}

// cacheRefresh runs a synchronous sweep and reports the outcome.
func cacheRefresh(svc *catalog.Service, args Args) {
	if !args.Quiet {
		fmt.Println("Sweeping the Hugging Face Hub (this takes ~30s with request pacing)...")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		if errors.Is(err, catalog.ErrSweepInFlight) {
			fmt.Println("A sweep is already running; try again shortly.")
			return
		}
		fmt.Printf("Sweep failed: %v\n", err)
		fmt.Println("The previous cache (if any) is untouched.")
		return
	}

	pairs := svc.CachedPairs()
	fmt.Printf("Catalog refreshed: %d (provider, model) pairs.\n", len(pairs))
	if args.Verbose {
		for _, p := range pairs {
			fmt.Printf("  %s\n", p)
		}
	}
}

// cacheClear deletes the cached catalog file.
func cacheClear() {
	store, err := catalog.DefaultStore()
	if err != nil {
		fmt.Printf("Failed to locate catalog: %v\n", err)
		return
	}
	if err := os.Remove(store.Path()); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Catalog cache already empty.")
			return
		}
		fmt.Printf("Failed to clear catalog: %v\n", err)
		return
	}
	fmt.Println("Catalog cache cleared.")
}
