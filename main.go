package main

import "github.com/jsphweid/solfege/cmd"

func main() {
	cmd.Execute()
}
