// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the hydra TUI.
//
// The view is a classic three-row layout: a scrollback viewport holding
// the transcript, a single-line prompt input, and a status bar showing
// the provider fan-out and the discovery-cache state.
//
// One prompt fans out to every enabled provider; each reply lands in the
// transcript as its own provider-tagged turn, in selection order. The
// fan-out runs on a command goroutine so the UI stays responsive, but a
// second submit is refused until the current one lands.
package chat
