package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/studiowebux/curlfmt/internal/bookmarks"
	"github.com/studiowebux/curlfmt/internal/jsonfmt"
)

// SaveBookmark stores a named query and reports whether it was new or replaced
func SaveBookmark(w io.Writer, dbPath, name, expression string) error {
	mgr, err := bookmarks.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	created, err := mgr.Save(name, expression)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Saved query %s%s\n", bookmarks.RefPrefix, name)
	} else {
		fmt.Fprintf(w, "Replaced query %s%s\n", bookmarks.RefPrefix, name)
	}
	return nil
}

// PrintBookmarks lists saved queries matching term (all when empty)
func PrintBookmarks(w io.Writer, dbPath, term, format string) error {
	mgr, err := bookmarks.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	list, err := mgr.Search(term)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		if list == nil {
			list = []bookmarks.Bookmark{}
		}
		data, err := json.MarshalIndent(list, "", jsonfmt.Indent)
		if err != nil {
			return fmt.Errorf("failed to encode bookmarks: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No saved queries")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXPRESSION")
	for _, b := range list {
		fmt.Fprintf(tw, "%s%s\t%s\n", bookmarks.RefPrefix, b.Name, b.Expression)
	}
	return tw.Flush()
}

// DeleteBookmark removes a saved query
func DeleteBookmark(w io.Writer, dbPath, name string) error {
	mgr, err := bookmarks.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted query %s\n", name)
	return nil
}
