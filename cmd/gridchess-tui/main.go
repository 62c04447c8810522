package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/hailam/gridchess/internal/console"
	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
	"github.com/hailam/gridchess/internal/tui"
)

var (
	dbDir   = flag.String("db", "", "database directory (default: platform data dir)")
	noStore = flag.Bool("nostore", false, "do not persist games")
	shuffle = flag.Bool("shuffle", false, "start with a shuffled game")
	seed    = flag.Int64("seed", 0, "seed for shuffled layouts (0: random)")
	strict  = flag.Bool("strict-castling", false, "require an unmoved rook to castle")
	logFile = flag.String("log", "", "write log output to file (default: discard)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// The alternate screen owns the terminal, so log lines go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var (
		store session.Store
		saved console.GameLister
	)
	if !*noStore {
		st, err := openStorage()
		if err != nil {
			log.Printf("Warning: storage unavailable: %v (games will not be saved)", err)
		} else {
			defer st.Close()
			store, saved = st, st
			if prefs, err := st.LoadPreferences(); err == nil {
				*shuffle = *shuffle || prefs.ShuffleByDefault
				*strict = *strict || prefs.StrictCastling
			}
		}
	}

	reg := session.NewRegistry(store)
	reg.SetStrictCastling(*strict || envBool("GRIDCHESS_STRICT_CASTLING"))
	if s := *seed; s != 0 {
		reg.SetSeed(s)
	} else if s, err := strconv.ParseInt(os.Getenv("GRIDCHESS_SEED"), 10, 64); err == nil && s != 0 {
		reg.SetSeed(s)
	}

	mode := session.Standard
	if *shuffle || envBool("GRIDCHESS_SHUFFLE") {
		mode = session.Shuffle
	}
	if _, err := reg.NewGame(mode); err != nil {
		return err
	}
	return tui.Run(reg, saved)
}

func openStorage() (*storage.Storage, error) {
	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("GRIDCHESS_DB")
	}
	if dir == "" {
		return storage.NewStorage()
	}
	return storage.Open(dir)
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
