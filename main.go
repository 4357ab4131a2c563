package main

import "model-generator/cmd"

func main() {
	cmd.Execute()
}
