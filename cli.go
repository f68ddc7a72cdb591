//go:build cli
// +build cli

package main

import (
	"inventify.GO/cmd"
	"inventify.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
