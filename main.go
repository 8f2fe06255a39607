package main

import "fancyfolders/cmd"

func main() {
	cmd.Execute()
}
