package main

import "github.com/notargets/panelflow/cmd"

func main() {
	cmd.Execute()
}
