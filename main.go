package main

import "github.com/taskpad/taskpad/cmd"

func main() {
	cmd.Execute()
}
