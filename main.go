package main

import "github.com/inovacc/multigit/cmd"

func main() {
	cmd.Execute()
}
