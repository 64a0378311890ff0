package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eringen/techfeed/scaffold"
)

func runInit(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	data := scaffold.Data{
		SiteName: scaffold.ToTitle(filepath.Base(abs)),
		Author:   "Tech Blog Team",
		Date:     time.Now().Format("2006-01-02"),
	}
	fmt.Printf("Creating techfeed project in %s\n\n", abs)
	created, err := scaffold.Write(dir, data)
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	if dir != "." {
		fmt.Printf("  cd %s\n", dir)
	}
	fmt.Println("  techfeed seed -config techfeed.yaml articles.yaml")
	fmt.Println("  techfeed api -config techfeed.yaml")
	fmt.Println("  techfeed serve -config techfeed.yaml")
	return nil
}
