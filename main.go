// SPDX-License-Identifier: MPL-2.0

package main

import cmd "workshed/cmd/workshed"

func main() {
	cmd.Execute()
}
