package main

import "github.com/gestionimagenes/backend/cmd"

func main() {
	cmd.Execute()
}
