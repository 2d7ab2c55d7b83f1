// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package main

import (
	"github.com/turbobarcam/tbctools/cmd"
)

func main() {
	cmd.Execute()
}
