// Command report runs the allocation pipeline offline against local
// fixture files, without a database or API server. Useful for vetting an
// assumption set before saving it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/pipeline"
	"bank_dashboard/pkg/core/render"
	"bank_dashboard/pkg/core/team"
)

func main() {
	godotenv.Load()

	assumptionsPath := flag.String("assumptions", "", "assumption set file (.hjson, .yaml)")
	accountsPath := flag.String("accounts", "", "accounts JSON file ([]Account)")
	rosterPath := flag.String("roster", "", "roster JSON file (optional)")
	coverage := flag.Int("coverage", 0, "override target coverage count")
	markdown := flag.Bool("markdown", false, "print markdown summary instead of JSON")
	flag.Parse()

	if *assumptionsPath == "" || *accountsPath == "" {
		log.Fatal("Error: -assumptions and -accounts are required.")
	}

	set, err := assumption.Load(*assumptionsPath)
	if err != nil {
		log.Fatalf("Critical: failed to load assumption set: %v", err)
	}

	var accounts []*account.Account
	if err := readJSON(*accountsPath, &accounts); err != nil {
		log.Fatalf("Critical: failed to load accounts: %v", err)
	}

	roster := &team.Roster{}
	if *rosterPath != "" {
		if err := readJSON(*rosterPath, roster); err != nil {
			log.Fatalf("Critical: failed to load roster: %v", err)
		}
	}

	fmt.Printf("[REPORT] %d accounts, assumption set %q\n", len(accounts), set.Version)

	report, err := pipeline.NewOrchestrator().Run(pipeline.Inputs{
		Accounts:            accounts,
		Assumptions:         set,
		Roster:              roster,
		TargetCoverageCount: *coverage,
	})
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	if *markdown {
		fmt.Println(render.Summary(report))
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
