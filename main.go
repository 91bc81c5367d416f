// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/oschwald/travis-build/cmd/travisbuild"

func main() {
	cmd.Execute()
}
