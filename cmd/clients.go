package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/fecledger/internal/client"
	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients of an entity",
}

var (
	clientEntity string
	clientNom    string
)

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		cl, err := c.CreateClient(context.Background(), clientEntity, clientNom)
		if err != nil {
			return err
		}
		fmt.Printf("Client created: %s (%s)\n", cl.ID, cl.Nom)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the clients of an entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		clients, err := c.ListClients(context.Background(), clientEntity)
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Println("No clients found.")
			return nil
		}

		fmt.Printf("%-36s %s\n", "ID", "NOM")
		fmt.Printf("%-36s %s\n", "----", "---")
		for _, cl := range clients {
			fmt.Printf("%-36s %s\n", cl.ID, cl.Nom)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{clientCreateCmd, clientListCmd} {
		cmd.Flags().StringVar(&clientEntity, "entity", "", "Entity ID")
		cmd.MarkFlagRequired("entity")
	}
	clientCreateCmd.Flags().StringVar(&clientNom, "nom", "", "Client name")
	clientCreateCmd.MarkFlagRequired("nom")

	clientCmd.AddCommand(clientCreateCmd)
	clientCmd.AddCommand(clientListCmd)

	rootCmd.AddCommand(clientCmd)
}
