package main

import "spip2jekyll/cmd"

func main() {
	cmd.Execute()
}
