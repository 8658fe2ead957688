package main

import "pelisplus/cmd"

func main() {
	cmd.Execute()
}
