// Command client connects to a screenlink host, shows the remote display
// in a window, and forwards local pointer and keyboard input.
//
// The address book keeps frequently used hosts by label:
//
//	client -save office 192.168.1.20:12345
//	client -list
//	client office
//	client 192.168.1.20
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avaropoint/screenlink/internal/addrbook"
	"github.com/avaropoint/screenlink/internal/client"
	"github.com/avaropoint/screenlink/internal/protocol"
	"github.com/avaropoint/screenlink/internal/version"
	"github.com/avaropoint/screenlink/internal/viewer"
)

func main() {
	list := flag.Bool("list", false, "List saved hosts and exit")
	save := flag.String("save", "", "Save the given address under this label and exit")
	remove := flag.String("delete", "", "Delete the saved host with this label and exit")
	dbPath := flag.String("db", "", "Address book path (defaults to the user config dir)")
	flag.Parse()

	log.Printf("Client v%s (built %s)", version.Version, version.BuildTime)

	book, err := openBook(*dbPath)
	if err != nil {
		log.Fatalf("Address book: %v", err)
	}
	defer book.Close()

	ctx := context.Background()

	switch {
	case *list:
		listHosts(ctx, book)
		return
	case *remove != "":
		if err := book.Delete(ctx, *remove); err != nil {
			log.Fatalf("Delete %q: %v", *remove, err)
		}
		log.Printf("Deleted %q", *remove)
		return
	case *save != "":
		if flag.NArg() != 1 {
			log.Fatal("Usage: client -save LABEL ADDRESS")
		}
		addr := withDefaultPort(flag.Arg(0))
		if err := book.Save(ctx, *save, addr); err != nil {
			log.Fatalf("Save %q: %v", *save, err)
		}
		log.Printf("Saved %q -> %s", *save, addr)
		return
	}

	if flag.NArg() != 1 {
		log.Fatal("Usage: client [flags] ADDRESS-OR-LABEL (see -h)")
	}

	addr, label := resolveTarget(ctx, book, flag.Arg(0))

	v := viewer.New()
	sess, err := client.Connect(addr, v, func(status string) {
		log.Println(status)
	})
	if err != nil {
		os.Exit(1)
	}
	v.SetSession(sess)

	if label != "" {
		if err := book.Touch(ctx, label, time.Now()); err != nil {
			log.Printf("Record last use of %q: %v", label, err)
		}
	}

	// The window owns the main goroutine until the session ends or the
	// user closes it.
	if err := v.Run("ScreenLink - " + addr); err != nil {
		log.Printf("Viewer: %v", err)
	}
	sess.Close()
}

// resolveTarget interprets the positional argument as a saved label
// first, then as a raw address. It returns the dial address and the
// matched label, if any.
func resolveTarget(ctx context.Context, book addrbook.Book, target string) (addr, label string) {
	if !strings.Contains(target, ":") {
		if e, err := book.Get(ctx, target); err == nil {
			return e.Address, e.Label
		}
	}
	return withDefaultPort(target), ""
}

// withDefaultPort appends the protocol's default port when the address
// has none.
func withDefaultPort(addr string) string {
	if strings.Contains(addr, ":") {
		return addr
	}
	return fmt.Sprintf("%s:%d", addr, protocol.DefaultPort)
}

func listHosts(ctx context.Context, book addrbook.Book) {
	entries, err := book.List(ctx)
	if err != nil {
		log.Fatalf("List: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No saved hosts. Add one with: client -save LABEL ADDRESS")
		return
	}
	for _, e := range entries {
		last := "never"
		if e.LastUsed != nil {
			last = e.LastUsed.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("%-20s %-24s last used %s\n", e.Label, e.Address, last)
	}
}

// openBook opens the address book at path, defaulting to a per-user
// config location.
func openBook(path string) (addrbook.Book, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		path = filepath.Join(dir, "screenlink", "addrbook.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return addrbook.Open(path)
}
