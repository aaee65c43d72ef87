package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker generate <request.yaml> [-response file] [-out dir] [-format all|json|csv|markdown]")
	}

	switch os.Args[1] {
	case "generate":
		RunGenerate(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
