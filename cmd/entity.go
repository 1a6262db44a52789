package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/fecledger/internal/client"
	"github.com/spf13/cobra"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage issuing entities",
}

// entity create
var (
	entityCreateName  string
	entityCreateSIRET string
)

var entityCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		e, err := c.CreateEntity(context.Background(), entityCreateName, entityCreateSIRET)
		if err != nil {
			return err
		}
		fmt.Printf("Entity created: %s (%s) SIRET %s\n", e.ID, e.Name, e.SIRET)
		return nil
	},
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		entities, err := c.ListEntities(context.Background())
		if err != nil {
			return err
		}
		if len(entities) == 0 {
			fmt.Println("No entities found.")
			return nil
		}

		fmt.Printf("%-36s %-30s %s\n", "ID", "NAME", "SIRET")
		fmt.Printf("%-36s %-30s %s\n", "----", "----", "-----")
		for _, e := range entities {
			fmt.Printf("%-36s %-30s %s\n", e.ID, truncate(e.Name, 30), e.SIRET)
		}
		return nil
	},
}

var entityGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get entity details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		e, err := c.GetEntity(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID:      %s\n", e.ID)
		fmt.Printf("Name:    %s\n", e.Name)
		fmt.Printf("SIRET:   %s\n", e.SIRET)
		fmt.Printf("Created: %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	entityCreateCmd.Flags().StringVar(&entityCreateName, "name", "", "Legal name")
	entityCreateCmd.Flags().StringVar(&entityCreateSIRET, "siret", "", "SIRET number")
	entityCreateCmd.MarkFlagRequired("name")
	entityCreateCmd.MarkFlagRequired("siret")

	entityCmd.AddCommand(entityCreateCmd)
	entityCmd.AddCommand(entityListCmd)
	entityCmd.AddCommand(entityGetCmd)

	rootCmd.AddCommand(entityCmd)
}

// truncate shortens s to n runes, marking the cut with "..".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}
