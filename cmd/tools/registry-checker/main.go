// cmd/tools/registry-checker/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"pragati-dashboard/pkg/registry"
)

func main() {
	path := flag.String("path", "configs/operations.json", "Path to operations registry file")
	list := flag.Bool("list", false, "Print the catalog after validating")
	flag.Parse()

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}

	if err := reg.Validate(); err != nil {
		fmt.Printf("Registry validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registry validation passed (%d operations).\n", len(reg.Operations))

	if *list {
		for _, op := range reg.Operations {
			roles, _ := json.Marshal(op.Roles)
			fmt.Printf("  %-24s %-6s %-50s roles=%s\n", op.ID, op.Method, op.Path, roles)
		}
	}
}
