package main

import "github.com/oshokin/ipmi-fru-it/cmd/ipmi-fru-it/cmd"

func main() {
	cmd.Execute()
}
