package main

import "github.com/kiesman99/collage/cmd"

func main() {
	cmd.Execute()
}
