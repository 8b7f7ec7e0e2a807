package main

import "github.com/jackchuka/reponest/cmd"

func main() {
	cmd.Execute()
}
