package main

import "github.com/nalharbi/inspection-management/cmd"

func main() {
	cmd.Execute()
}
