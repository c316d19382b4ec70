package main

import "github.com/simaogato/inventory-backend/internal/cli"

func main() {
	cli.Execute()
}
