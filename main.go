package main

import "github.com/KaramelBytes/studyloom-cli/cmd"

func main() {
	cmd.Execute()
}
