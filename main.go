package main

import "github.com/Tiliavir/field-time-tracker/cmd"

func main() {
	cmd.Execute()
}
