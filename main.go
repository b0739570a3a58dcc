package main

import "pindb/cmd"

func main() {
	cmd.Execute()
}
