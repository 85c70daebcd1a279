package main

import "github.com/pyship/pyship/cmd/pyship/cmd"

func main() {
	cmd.Execute()
}
