package main

import "skyline/cmd"

func main() {
	cmd.Execute()
}
