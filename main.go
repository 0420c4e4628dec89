package main

import "git.sr.ht/~avern/wpcraft/cmd"

func main() {
	cmd.Execute()
}
