package main

import "github.com/mouse-blink/turretlint/cmd"

func main() {
	cmd.Execute()
}
