// Command graphcheck validates a collaboration graph document against
// the expected shape and internal consistency rules. It exits 0 when
// the document is valid, 1 when violations are found and 2 when the
// document cannot be read at all.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ai-village-agents/collabgraph/internal/validate"
)

const schemaFileMode = 0o644

func main() {
	var (
		dataPath   = flag.String("data", "graph-data.json", "Graph document to validate")
		schemaPath = flag.String("write-schema", "", "Write the document JSON schema to this path and exit")
	)
	flag.Parse()

	if *schemaPath != "" {
		schema, err := validate.Schema()
		if err != nil {
			os.Stderr.WriteString("failed to build schema: " + err.Error() + "\n")
			os.Exit(2)
		}
		if err := os.WriteFile(*schemaPath, schema, schemaFileMode); err != nil {
			os.Stderr.WriteString("failed to write schema: " + err.Error() + "\n")
			os.Exit(2)
		}
		fmt.Printf("wrote schema to %s\n", *schemaPath)
		return
	}

	report, err := validate.File(*dataPath)
	if err != nil {
		os.Stderr.WriteString("failed to read document: " + err.Error() + "\n")
		os.Exit(2)
	}

	if report.OK() {
		fmt.Printf("%s is a valid collaboration graph document\n", *dataPath)
		return
	}

	fmt.Fprintf(os.Stderr, "%s has %d violations:\n", *dataPath, len(report))
	for _, v := range report {
		fmt.Fprintf(os.Stderr, "- %s\n", v.Message)
	}
	os.Exit(1)
}
