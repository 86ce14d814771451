// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea messages produced by background commands.
package chat

import (
	"github.com/jeranaias/hydra-tui/internal/catalog"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/model"
)

// repliesMsg carries the assistant turns of one completed fan-out. The
// update loop appends them to the transcript on receipt.
type repliesMsg struct {
	replies []model.Turn
}

// sweepDoneMsg reports a finished catalog sweep (background or forced).
type sweepDoneMsg struct {
	err error
}

// pairsMsg delivers the picker's (sub-provider, model) pairs.
type pairsMsg struct {
	pairs []catalog.Pair
}

// SettingsReloadedMsg is sent from outside the program when the settings
// document changed on disk. Routing it through the update loop keeps all
// session mutation on the Bubble Tea goroutine.
type SettingsReloadedMsg struct {
	Settings *config.Settings
}
