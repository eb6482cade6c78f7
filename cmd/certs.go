package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/store"
)

var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Inspect issued certificates",
}

var certsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued certificates, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		certs, err := s.CertificateRepo().ListCertificates(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list certificates: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(certs) == 0 {
			fmt.Fprintln(out, "No certificates issued yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-19s  %-20s  %6s  %-28s  %s\n",
			"ID", "Issued", "Name", "Score", "Course", "Path")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, c := range certs {
			fmt.Fprintf(out, "%-16s  %-19s  %-20s  %5.1f%%  %-28s  %s\n",
				c.ID,
				c.IssuedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(c.Name, 20),
				c.Score,
				truncate(c.Title, 28),
				c.Path,
			)
		}
		return nil
	},
}

func init() {
	certsListCmd.Flags().IntP("limit", "n", 20, "Number of certificates to show")
	certsCmd.AddCommand(certsListCmd)
}
