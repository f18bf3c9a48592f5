package main

import "github.com/fakeyudi/tempo/cmd"

func main() {
	cmd.Execute()
}
