package main

import "github.com/etfmatcher/etfv-cli/cmd"

func main() {
	cmd.Execute()
}
