package main

import "github.com/theirongolddev/valuate/cmd"

func main() {
	cmd.Execute()
}
