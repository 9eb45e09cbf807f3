package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/dm-vev/candelight/server/world/entitydb"
)

func main() {
	dir := flag.String("world", "world", "folder of the entity database")
	flag.Parse()

	db, err := entitydb.Config{ReadOnly: true}.Open(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	count := 0
	err = db.ForEach(func(pos cube.Pos, data map[string]any) error {
		if data["id"] != "Candelabra" {
			return nil
		}
		count++
		fmt.Printf("%v => %v\n", pos, format(data))
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%d candelabras\n", count)
}

// format prints the fields of a block entity sorted by key.
func format(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%v=%v", k, data[k])
	}
	return s
}
