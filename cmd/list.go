package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jackchuka/reponest/internal/config"
	"github.com/jackchuka/reponest/internal/model"
	"github.com/jackchuka/reponest/internal/scanner"
	"github.com/jackchuka/reponest/internal/status"
)

var (
	flagListDetail bool
	flagListJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "list [path]",
	Aliases: []string{"ls"},
	Short:   "Scan once and print repository status",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListDetail, "detail", false, "add remote, last commit and stash columns")
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "emit a JSON array instead of columns")
	rootCmd.AddCommand(listCmd)
}

var (
	styleListHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	styleListStatus = map[string]lipgloss.Style{
		"clean":    lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		"dirty":    lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		"conflict": lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		"unpushed": lipgloss.NewStyle().Foreground(lipgloss.Color("73")),
		"unpulled": lipgloss.NewStyle().Foreground(lipgloss.Color("139")),
	}
)

func runList(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.ScanPaths = []string{config.ExpandHome(args[0])}
	}
	if len(cfg.ScanPaths) == 0 {
		return fmt.Errorf("no scan paths configured, run 'reponest init' first")
	}

	ctx := cmd.Context()

	walker := scanner.NewWalker(scanner.Config{MaxDepth: cfg.MaxDepth, Exclude: cfg.Exclude})
	paths := walker.ScanMany(ctx, cfg.ScanPaths)

	infos, err := status.ExtractBatch(ctx, status.NewReader(), paths, 0)
	if err != nil {
		return err
	}

	kept := make([]model.Info, 0, len(infos))
	for _, info := range infos {
		if info.Err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", info.Path, info.Err)
			continue
		}
		if flagDirty && !info.Dirty {
			continue
		}
		if flagConflict && info.Conflicts == 0 {
			continue
		}
		kept = append(kept, info)
	}
	model.SortByPath(kept)

	if flagListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(kept)
	}

	printTable(os.Stdout, kept, flagListDetail)
	return nil
}

func printTable(w io.Writer, infos []model.Info, detail bool) {
	headers := []string{"NAME", "BRANCH", "STATUS", "SYNC", "PATH"}
	if detail {
		headers = []string{"NAME", "BRANCH", "STATUS", "SYNC", "REMOTE", "LAST COMMIT", "STASH", "PATH"}
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		row := []string{info.Name, info.Branch, info.StatusWord(), syncCell(info)}
		if detail {
			row = append(row,
				orDash(info.RemoteURL),
				truncateCell(info.LastCommit, 40),
				fmt.Sprintf("%d", info.StashCount),
			)
		}
		row = append(row, info.Path)
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&b, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w, styleListHeader.Render(strings.TrimRight(b.String(), " ")))

	for r, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			padded := fmt.Sprintf("%-*s", widths[i], cell)
			// Colorize after padding so ANSI codes do not skew alignment.
			if headers[i] == "STATUS" {
				if style, ok := styleListStatus[infos[r].StatusWord()]; ok {
					padded = style.Render(padded)
				}
			}
			line.WriteString(padded)
			line.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func syncCell(info model.Info) string {
	if info.Ahead == 0 && info.Behind == 0 {
		return "-"
	}
	var b strings.Builder
	if info.Ahead > 0 {
		fmt.Fprintf(&b, "↑%d", info.Ahead)
	}
	if info.Behind > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "↓%d", info.Behind)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncateCell(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
