// address-inspect compares the comma-heuristic address components used
// by the enrichment pipeline against a full libpostal parse. Useful for
// spotting address shapes the heuristics miss before they land in the
// database.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	postal "github.com/openvenues/gopostal/parser"

	"github.com/wanderlist/internal/address"
)

func main() {
	var (
		addr = flag.String("address", "", "Formatted address to inspect")
		file = flag.String("file", "", "File with one address per line")
	)
	flag.Parse()

	if *addr == "" && *file == "" {
		fmt.Println("Usage: address-inspect -address \"...\" | -file addresses.txt")
		os.Exit(1)
	}

	if *addr != "" {
		inspect(*addr)
		return
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		inspect(line)
		fmt.Println()
	}
}

func inspect(addr string) {
	fmt.Printf("Address: %s\n", addr)

	fmt.Println("  Heuristic components:")
	fmt.Printf("    city:    %s\n", orNone(address.ExtractCity(addr)))
	fmt.Printf("    state:   %s\n", orNone(address.ExtractState(addr)))
	fmt.Printf("    country: %s\n", orNone(address.ExtractCountry(addr)))

	fmt.Println("  libpostal parse:")
	for _, component := range postal.ParseAddress(addr) {
		fmt.Printf("    %-12s %s\n", component.Label+":", component.Value)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
