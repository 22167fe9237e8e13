package main

import "github.com/frahmantamala/user-dashboard/cmd"

func main() {
	cmd.Execute()
}
