package main

import "rally_timecomp/cmd"

func main() {
	cmd.Execute()
}
