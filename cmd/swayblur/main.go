package main

import (
	"github.com/ForgottenUmbrella/swayblur/cmd/swayblur/commands"
)

func main() {
	commands.Execute()
}
