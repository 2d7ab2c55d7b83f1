// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package extract scrapes the three add-on sources the keybind documentation
// is built from: registered actions in the Lua widget, the i18n document and
// the uikeys bind file. Extraction is pure; callers own file I/O.
package extract

// DefaultActionPrefix is the naming convention every TurboBarCam action follows.
const DefaultActionPrefix = "turbobarcam_"
