package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bookshelf/internal/config"
	"bookshelf/internal/store"
)

func main() {
	config.LoadEnvFiles()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	defaultFile := os.Getenv("BOOKS_FILE")
	if defaultFile == "" {
		defaultFile = config.DefaultBooksFile
	}

	file := flag.String("file", defaultFile, "catalog file to write")
	count := flag.Int("count", 0, "number of generated books to add after the samples")
	force := flag.Bool("force", false, "overwrite an existing non-empty catalog")
	flag.Parse()

	if *count < 0 {
		log.Fatal().Int("count", *count).Msg("count must not be negative")
	}

	total, err := seed(context.Background(), store.NewFileStore(*file), seedOptions{
		Count: *count,
		Force: *force,
	})
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("seed failed")
	}
	log.Info().Str("file", *file).Int("books", total).Msg("catalog seeded")
}
