package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/tools"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Listing needs no upstream, so an unconfigured gateway is fine
			d, err := tools.NewDispatcher(gateway.New(nil, gateway.Credentials{}))
			if err != nil {
				return err
			}
			ListTools(cmd.OutOrStdout(), d.ListOperations())
			return nil
		},
	}
}

// ListTools writes the operation catalog to w in listing order
func ListTools(w io.Writer, ops []tools.Operation) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("LodeStar Tools (%d):", len(ops))))
	if len(ops) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	for _, op := range ops {
		fmt.Fprintf(w, "  • %s - %s\n", nameStyle.Render(op.Name), op.Description)
		if op.InputSchema != nil && len(op.InputSchema.Required) > 0 {
			fmt.Fprintln(w, requiredStyle.Render("      required: "+strings.Join(op.InputSchema.Required, ", ")))
		}
	}
}
