package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/hailam/gridchess/internal/console"
	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	noStore    = flag.Bool("nostore", false, "do not persist games")
	shuffle    = flag.Bool("shuffle", false, "start with a shuffled game")
	seed       = flag.Int64("seed", 0, "seed for shuffled layouts (0: random)")
	strict     = flag.Bool("strict-castling", false, "require an unmoved rook to castle")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
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
		}
	}

	reg := session.NewRegistry(store)
	reg.SetStrictCastling(*strict || envBool("GRIDCHESS_STRICT_CASTLING"))
	if s := envInt64("GRIDCHESS_SEED", *seed); s != 0 {
		reg.SetSeed(s)
	}

	mode := session.Standard
	if *shuffle || envBool("GRIDCHESS_SHUFFLE") {
		mode = session.Shuffle
	}
	if _, err := reg.NewGame(mode); err != nil {
		log.Fatal(err)
	}

	c := console.New(reg, saved)
	if err := c.Run(os.Stdin, os.Stdout); err != nil {
		log.Printf("console: %v", err)
	}
}

// openStorage opens the database named by -db, GRIDCHESS_DB, or the default
// location, in that order.
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

func envInt64(key string, fallback int64) int64 {
	if fallback != 0 {
		return fallback
	}
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
