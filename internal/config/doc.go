// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for wbctl's user
// configuration, a YAML document normally found at:
//   - Linux: $XDG_CONFIG_HOME/wbctl.yaml or $HOME/.config/wbctl.yaml
//   - macOS: $HOME/Library/Application Support/wbctl.yaml
//   - Windows: %APPDATA%/wbctl.yaml
//
// WBCTL_CFG_FILE overrides the location.
package config
