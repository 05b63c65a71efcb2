// Command biobank manages MIABIS, SPREC and OMOP record tables stored as
// semicolon-separated files.
package main

import "github.com/mesh-intelligence/biobank/internal/cli"

func main() {
	cli.Execute()
}
