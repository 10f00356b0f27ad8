package main

import "github.com/Bibz-a/World-Happiness-Analysis/cmd"

func main() {
	cmd.Execute()
}
