package main

import "cinema-boxoffice/cmd"

func main() {
	cmd.Execute()
}
