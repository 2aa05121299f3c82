// Clear and re-initialize the storage system: flush the cache,
// tear down the database, and rebuild both from scratch.
package main

import (
	"log"

	"github.com/paulstansifer/convert-nonogram/dbprep"
)

func main() {
	log.Printf("Removing existing data storage and cache...")
	if err := dbprep.ReinitializeAll(); err != nil {
		log.Fatalf("Couldn't clear storage: %v", err)
	}
	log.Printf("Database re-initialized.")
}
