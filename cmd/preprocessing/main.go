package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"lintang/gridnav/pkg/config"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/kv"

	"github.com/cockroachdb/pebble"
)

var (
	mapDir  = flag.String("dir", "maps", "directory file peta ASCII (*.map)")
	dbPath  = flag.String("db", "", "directory pebble db (override GRIDNAV_DB_PATH)")
	workers = flag.Int("workers", 0, "jumlah worker import (override GRIDNAV_WORKERS)")
	envFile = flag.String("env", ".env", "file .env opsional")
)

// import semua file peta di -dir ke pebble db, nama grid = nama file tanpa ekstensi.
func main() {
	flag.Parse()
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	files, err := filepath.Glob(filepath.Join(*mapDir, "*.map"))
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no .map file in %s", *mapDir)
	}
	sort.Strings(files)

	parser := gridparser.NewGridParser(true)
	maps := make([]*gridparser.Map, 0, len(files))
	for _, f := range files {
		m, err := parser.ParseFile(f)
		if err != nil {
			log.Fatal(err)
		}
		maps = append(maps, m)
	}

	db, err := pebble.Open(cfg.DBPath, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(db).WithProgress()
	defer kvDB.Close()

	if err := kvDB.ImportMaps(maps, cfg.Workers); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n%d grids imported to %s\n", len(maps), cfg.DBPath)
}
