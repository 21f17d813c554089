package kv

import (
	"errors"
	"fmt"
	"strings"

	"lintang/gridnav/pkg/concurrent"
	"lintang/gridnav/pkg/gridparser"
	"lintang/gridnav/pkg/server"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

const gridKeyPrefix = "grid:"

type KVDB struct {
	db           *pebble.DB
	showProgress bool
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db: db}
}

// WithProgress nampilin progressbar waktu ImportMaps, buat cmd/preprocessing.
func (k *KVDB) WithProgress() *KVDB {
	k.showProgress = true
	return k
}

func gridKey(name string) []byte {
	return []byte(gridKeyPrefix + name)
}

func (k *KVDB) SaveGrid(name string, m *gridparser.Map) error {
	if name == "" {
		return server.WrapErrorf(nil, server.ErrBadParamInput, "grid name must not be empty")
	}
	rec := toRecord(m)
	rec.Name = name
	return k.saveGrid(concurrent.SaveGridJobItem{KeyStr: gridKeyPrefix + name, Record: rec})
}

func (k *KVDB) saveGrid(item concurrent.SaveGridJobItem) error {
	val, err := CompressGrid(item.Record)
	if err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "compress grid %s", item.Record.Name)
	}
	if err := k.db.Set([]byte(item.KeyStr), val, pebble.Sync); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "save grid %s", item.Record.Name)
	}
	return nil
}

func (k *KVDB) GetGrid(name string) (*gridparser.Map, error) {
	val, closer, err := k.db.Get(gridKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, server.WrapErrorf(err, server.ErrNotFound, "grid %s not found", name)
	}
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "get grid %s", name)
	}
	defer closer.Close()

	m, err := LoadGrid(val)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "decode grid %s", name)
	}
	return m, nil
}

func (k *KVDB) DeleteGrid(name string) error {
	_, closer, err := k.db.Get(gridKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return server.WrapErrorf(err, server.ErrNotFound, "grid %s not found", name)
	}
	if err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "delete grid %s", name)
	}
	closer.Close()

	if err := k.db.Delete(gridKey(name), pebble.Sync); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "delete grid %s", name)
	}
	return nil
}

// ListGrids nama grid urut sesuai key pebble (leksikografis).
func (k *KVDB) ListGrids() ([]string, error) {
	iter, err := k.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(gridKeyPrefix),
		UpperBound: []byte("grid;"), // ';' = ':' + 1
	})
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "list grids")
	}
	defer iter.Close()

	names := []string{}
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, strings.TrimPrefix(string(iter.Key()), gridKeyPrefix))
	}
	if err := iter.Error(); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "list grids")
	}
	return names, nil
}

// ImportMaps simpan banyak map sekaligus pakai worker pool. return error pertama yang ketemu.
func (k *KVDB) ImportMaps(maps []*gridparser.Map, numWorkers int) error {
	var bar *progressbar.ProgressBar
	if k.showProgress {
		bar = progressbar.NewOptions(len(maps),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][2/2][reset] saving grids to pebble db..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	workers := concurrent.NewWorkerPool[concurrent.SaveGridJobItem, error](numWorkers, len(maps))
	for _, m := range maps {
		workers.AddJob(concurrent.SaveGridJobItem{KeyStr: gridKeyPrefix + m.Name, Record: toRecord(m)})
	}
	workers.Close()

	workers.Start(k.saveGrid)
	workers.Wait()

	var firstErr error
	for err := range workers.CollectResults() {
		if bar != nil {
			bar.Add(1)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if bar != nil {
		fmt.Println("")
	}
	return firstErr
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
