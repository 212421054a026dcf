// SPDX-License-Identifier: MPL-2.0

// Command dorion-updater updates Dorion and its Vencord plugin bundle.
package main

import cmd "dorion-updater/cmd/updater"

func main() {
	cmd.Execute()
}
