package main

import (
	"flag"
	"fmt"
	"os"

	"geo-pricing-service/internal/adapters/cache"
	"geo-pricing-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// cachetool manages the Postgres cache tables from the command line.
//
//	cachetool -init   create the cache tables
//	cachetool -flush  empty the cache tables
func main() {
	initSchema := flag.Bool("init", false, "create the cache tables")
	flush := flag.Bool("flush", false, "empty the cache tables")
	flag.Parse()

	if !*initSchema && !*flush {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fatal(fmt.Errorf("DATABASE_URL is required"))
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		fatal(err)
	}
	defer sqlDB.Close()

	if *initSchema {
		if err := cache.InitSchema(sqlDB); err != nil {
			fatal(err)
		}
		fmt.Println("cache tables ready")
	}

	if *flush {
		if err := cache.FlushTables(sqlDB); err != nil {
			fatal(err)
		}
		fmt.Println("cache tables flushed")
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "cachetool:", err)
	os.Exit(1)
}
