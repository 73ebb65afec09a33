package cli

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/stagetree/internal/conf"
	"github.com/interpretive-systems/stagetree/internal/difftree"
	"github.com/interpretive-systems/stagetree/internal/gitx"
	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the change tree with staging states and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := mustGetStringFlag(cmd.Root(), "repo")
			repo, err := gitx.Open(repoPath)
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			diff, err := gitx.Status(repo.WorkdirPath())
			if err != nil {
				return err
			}

			model := difftree.NewModel(repo, conf.Default())
			model.SetDiff(diff)
			printSubtree(cmd, model, difftree.InvalidHandle, 0)
			return nil
		},
	}
	return cmd
}

func printSubtree(cmd *cobra.Command, m *difftree.Model, parent difftree.Handle, depth int) {
	for row := 0; row < m.RowCount(parent); row++ {
		h := m.Child(parent, row)
		name, _ := m.Data(h, difftree.RoleDisplay).(string)
		if m.HasChildren(h) {
			name += "/"
		}

		var box string
		switch m.CheckState(h) {
		case difftree.Checked:
			box = "[x]"
		case difftree.PartiallyChecked:
			box = "[~]"
		case difftree.Unchecked:
			box = "[ ]"
		default:
			box = "   "
		}

		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), box, name)
		if status := m.StatusSummary(h); status != "" {
			line += "  " + status
		}
		cmd.Println(line)
		printSubtree(cmd, m, h, depth+1)
	}
}
