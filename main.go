package main

import "dayspend/cmd"

func main() {
	cmd.Execute()
}
