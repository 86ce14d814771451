// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for the hydra CLI.
//
// Handles "hydra config":
//   hydra config show                   Full settings document
//   hydra config get <provider>         One provider's selected model
//   hydra config set <provider> <model> Select and persist a model
//   hydra config set hf-provider <sub>  Select the HF router sub-provider
//   hydra config path                   Settings file location
package cli

import (
	"fmt"
	"sort"

	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/provider"
)

// hfSubProviderKey is the config-set alias for the router sub-provider.
const hfSubProviderKey = "hf-provider"

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		configShow()
	case "get":
		configGet(args.ConfigKey)
	case "set":
		configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		configPath()
	default:
		fmt.Printf("Unknown config subcommand: %s\n", args.Subcommand)
		fmt.Println("Usage: hydra config [show|get|set|path]")
	}
}

// configShow prints the full selection table.
func configShow() {
	settings := config.Global()

	fmt.Println("Selected models:")
	for _, e := range provider.All() {
		fmt.Printf("  %-12s %s\n", e.ID, settings.ModelFor(e.ID))
	}
	if sub := settings.HFSubProvider(); sub != "" {
		fmt.Printf("  %-12s %s\n", hfSubProviderKey, sub)
	}

	// Any extra keys a hand-edited document carries are shown verbatim.
	known := make(map[string]bool)
	for _, e := range provider.All() {
		known[e.ID] = true
	}
	var extras []string
	for k := range settings.SelectedModels {
		if !known[k] && k != "HuggingFaceProvider" {
			extras = append(extras, k)
		}
	}
	if len(extras) > 0 {
		sort.Strings(extras)
		fmt.Println("Other keys:")
		for _, k := range extras {
			fmt.Printf("  %-12s %s\n", k, settings.SelectedModels[k])
		}
	}
}

// configGet prints one provider's selection.
func configGet(key string) {
	if key == "" {
		fmt.Println("Usage: hydra config get <provider>")
		return
	}

	settings := config.Global()
	if key == hfSubProviderKey {
		fmt.Println(settings.HFSubProvider())
		return
	}

	e, ok := provider.Lookup(key)
	if !ok {
		fmt.Printf("Unknown provider %q\n", key)
		return
	}
	fmt.Println(settings.ModelFor(e.ID))
}

// configSet updates one selection and persists the whole document.
func configSet(key, value string) {
	if key == "" || value == "" {
		fmt.Println("Usage: hydra config set <provider> <model>")
		return
	}

	settings := config.Global()

	if key == hfSubProviderKey {
		settings.SetHFSubProvider(value)
	} else {
		e, ok := provider.Lookup(key)
		if !ok {
			fmt.Printf("Unknown provider %q\n", key)
			return
		}
		settings.SetModelFor(e.ID, value)
	}

	if err := config.Save(settings); err != nil {
		fmt.Printf("Failed to save settings: %v\n", err)
		return
	}
	config.SetGlobal(settings)
	fmt.Printf("Set %s = %s\n", key, value)
}

// configPath prints where the settings document lives.
func configPath() {
	path, err := config.PathTOML()
	if err != nil {
		fmt.Printf("Failed to locate config: %v\n", err)
		return
	}
	fmt.Println(path)
}
