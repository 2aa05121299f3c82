// Prepare the storage system: install the schema and load the
// stock puzzle collection.
package main

import (
	"log"

	"github.com/paulstansifer/convert-nonogram/dbprep"
)

func main() {
	log.Printf("Preparing data storage...")
	if err := dbprep.EnsureData(); err != nil {
		log.Fatalf("Couldn't prepare storage: %v", err)
	}
	log.Printf("Database initialized.")
}
