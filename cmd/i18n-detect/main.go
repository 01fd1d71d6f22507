package main

import "github.com/mvp-joe/i18n-detect/internal/cli"

func main() {
	cli.Execute()
}
