package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/lexbridge/internal/audit"
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/prompts"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

var (
	auditDir     string
	expertiseDir string

	templateRole         string
	templateJurisdiction string
	templateHistory      []string

	domainName string
)

var reasonCmd = &cobra.Command{
	Use:   "reason [query]",
	Short: "Run the reasoning chain for a query and print every step",
	Long: `Runs facts, rules, application and conclusion in order and prints the
result as JSON. Each step is also written to the audit directory.

Example:
  lexbridge reason "Is X liable?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain := reasoning.NewChain(audit.NewFileSink(auditDir), logger.Named("reasoning"))
		return printJSON(cmd.OutOrStdout(), chain.Run(strings.Join(args, " ")))
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Build the prompt template for a role, jurisdiction and history",
	Long: `Example:
  lexbridge template --role lawyer --jurisdiction EU --history "Q1" --history "A1"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := io.WriteString(cmd.OutOrStdout(),
			prompts.BuildTemplate(templateHistory, templateRole, templateJurisdiction)+"\n")
		return err
	},
}

var domainCmd = &cobra.Command{
	Use:   "domain [text]",
	Short: "Detect the legal domain of a text and print its expertise profile",
	Long: `Example:
  lexbridge domain "What about GST assessment?"
  lexbridge domain --domain criminal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := expertise.NewLoader(expertiseDir, logger.Named("expertise"))
		domain, profile := loader.Load(domainName, strings.Join(args, " "))
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"domain":  domain,
			"profile": profile,
		})
	},
}

func init() {
	reasonCmd.Flags().StringVar(&auditDir, "audit-dir", "logs/reasoning", "directory for step audit records")

	templateCmd.Flags().StringVar(&templateRole, "role", "user", "user, lawyer or admin")
	templateCmd.Flags().StringVar(&templateJurisdiction, "jurisdiction", "OTHER", "US, EU or any other value")
	templateCmd.Flags().StringArrayVar(&templateHistory, "history", nil, "previous turn (repeatable, oldest first)")

	domainCmd.Flags().StringVar(&expertiseDir, "expertise-dir", "config/expertise", "directory with <domain>.yaml profiles")
	domainCmd.Flags().StringVar(&domainName, "domain", "", "skip detection and load this domain")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
