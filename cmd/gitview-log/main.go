// Command gitview-log prints a repository's history graph, or the file
// stats of one commit, using the same pipeline as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kurobon/gitview/internal/config"
	"github.com/kurobon/gitview/internal/diff"
	"github.com/kurobon/gitview/internal/graph"
	"github.com/kurobon/gitview/internal/state"
	"github.com/kurobon/gitview/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("configuration problems", "err", err)
	}

	all := flag.Bool("all", false, "start from every branch and tag")
	limit := flag.Int("n", 50, "number of commits")
	stat := flag.String("stat", "", "print file stats of this commit instead")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		path = cfg.DefaultRepo
	}
	if path == "" {
		path = "."
	}

	m := state.NewManager()
	repo, err := m.Open(path)
	if err != nil {
		log.Fatal("open repository", "path", path, "err", err)
	}
	ctx := context.Background()

	if *stat != "" {
		text, err := state.CommitDiff(ctx, repo, *stat, "", cfg.ContextLines)
		if err != nil {
			log.Fatal("commit diff", "err", err)
		}
		files, err := diff.ParseFiles(ctx, text)
		if err != nil {
			log.Fatal("parse diff", "err", err)
		}
		for _, s := range diff.Stats(files) {
			if s.IsBinary {
				fmt.Printf(" %-8s %s (binary)\n", s.Status, s.FilePath)
				continue
			}
			fmt.Printf(" %-8s %s +%d -%d\n", s.Status, s.FilePath, s.Additions, s.Deletions)
		}
		return
	}

	commits, err := m.Commits(ctx, path, state.ListOptions{All: *all, Limit: *limit + 1})
	if err != nil {
		log.Fatal("list commits", "err", err)
	}
	refs, err := state.Refs(repo)
	if err != nil {
		log.Fatal("list refs", "err", err)
	}
	page := view.History(commits, refs, view.HistoryOptions{
		Limit:          *limit,
		Palette:        graph.Palette(cfg.Palette),
		PrefixRefMatch: cfg.PrefixRefMatch,
	})
	if err := view.WriteText(os.Stdout, page); err != nil {
		log.Fatal("write", "err", err)
	}
	if page.HasMore {
		fmt.Println("...")
	}
}
