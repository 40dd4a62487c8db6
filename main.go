// release-doc-gen generates the release documentation of a github release.
//
// It reads the notes of the release tag, fetches the tracker tickets the notes
// mention, and produces:
//   - a structured document with features, bug fixes, ticket cards and a
//     summary, printed and saved as Markdown
//   - one record per change, typed as feature or bug
//   - optionally, a tracker issue holding the document
//
// Credentials come from the environment: GITHUB_TOKEN, JIRA_URL, JIRA_EMAIL,
// JIRA_TOKEN, JIRA_PROJECT_KEY and OPENAI_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/menghanl/release-doc-gen/internal/config"
	"github.com/menghanl/release-doc-gen/internal/logging"
	"github.com/menghanl/release-doc-gen/release"
)

var (
	configPath = flag.String("config", "release-doc-gen.yaml", "path of the yaml config file")
	tag        = flag.String("tag", "", "release tag, for example v1.2.0")
	owner      = flag.String("owner", "", "github repo owner, overrides the config file")
	repo       = flag.String("repo", "", "github repo, overrides the config file")
	out        = flag.String("out", "", "output directory, overrides the config file")
	issue      = flag.Bool("issue", false, "whether to create a tracker issue with the document")
	noFiles    = flag.Bool("nofiles", false, "do not write the documents to disk")
	records    = flag.Bool("records", false, "print the records as json")
)

func main() {
	flag.Parse()
	log := logging.New(os.Stderr)

	if *tag == "" {
		fmt.Println("invalid release tag, usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if *owner != "" {
		cfg.GitHub.Owner = *owner
	}
	if *repo != "" {
		cfg.GitHub.Repo = *repo
	}
	if *out != "" {
		cfg.Document.OutputDir = *out
	}

	ctx := context.Background()
	r, err := release.NewRunner(ctx, cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	res, err := r.Run(ctx, release.Options{
		Tag:         *tag,
		WriteFiles:  !*noFiles,
		CreateIssue: *issue,
	})
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	fmt.Printf("\n================ generated notes for repo %q release %q (%v) ================\n\n",
		cfg.GitHub.Owner+"/"+cfg.GitHub.Repo, res.Tag, res.Mode)
	for _, section := range res.Notes.Sections {
		fmt.Printf("# %v\n\n", color.BlueString(section.Name))
		for _, entry := range section.Entries {
			fmt.Printf(" * %v (%v)\n", entry.Title, color.GreenString(entry.TicketID))
		}
		fmt.Println()
	}

	if *records {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Records); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	}
}
