// Cleans the local safety-index CSV in place. Run before serving if the
// dataset has been edited by hand.
package main

import (
	"flag"
	"log"

	"persona-chat/internal/dataset"
)

func main() {
	path := flag.String("path", "data/safety_index.csv", "path to the safety index CSV")
	flag.Parse()

	rows, err := dataset.Normalize(*path)
	if err != nil {
		log.Fatalf("failed to normalize dataset: %v", err)
	}
	log.Printf("normalized %s: %d rows retained", *path, len(rows))
}
