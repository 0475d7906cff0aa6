// Command seed_messages fills a local badger store with sample
// conversations, for exercising the history endpoint and the inspect tool
// without a running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"devconnect/domain"
	"devconnect/repositories"
)

func main() {
	dbPath := flag.String("db", "/tmp/devconnect", "Path to badger DB")
	perPair := flag.Int("n", 20, "Messages to generate per conversation")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repo := repositories.NewMessageRepository(db, slog.Default())
	ctx := context.Background()

	pairs := [][2]string{
		{"alice", "bob"},
		{"alice", "clara"},
		{"bob", "clara"},
	}

	start := time.Now().Add(-time.Duration(*perPair) * time.Minute)
	total := 0
	for _, pair := range pairs {
		for i := 0; i < *perPair; i++ {
			from, to := pair[0], pair[1]
			if i%2 == 1 {
				from, to = to, from
			}
			msg, err := domain.NewMessage(from, to, fmt.Sprintf("message %d from %s", i+1, from), start.Add(time.Duration(i)*time.Minute))
			if err != nil {
				log.Fatal("Building message: ", err)
			}
			if err := repo.StoreMessage(ctx, msg); err != nil {
				log.Fatal("Storing message: ", err)
			}
			total++
		}
	}

	fmt.Printf("Seeded %d messages across %d conversations into %s\n", total, len(pairs), *dbPath)
}
