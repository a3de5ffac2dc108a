package main

import "card-vault/cmd"

func main() {
	cmd.Execute()
}
