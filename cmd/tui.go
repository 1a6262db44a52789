package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/simonvc/fecledger/internal/client"
	"github.com/simonvc/fecledger/internal/server"
	"github.com/simonvc/fecledger/internal/store"
	"github.com/simonvc/fecledger/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiPeriod periodFlags

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Preview an export interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := tuiPeriod.parse()
		if err != nil {
			return err
		}
		if cfg.LogOutput == "" || cfg.LogOutput == "stderr" || cfg.LogOutput == "stdout" {
			// Terminal log output would draw over the alt screen.
			zerolog.SetGlobalLevel(zerolog.Disabled)
		}
		serverAddr := flagServer

		if !cmd.Flags().Changed("server") {
			// Start embedded server in background
			st, err := store.Open(flagDB)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			srv := server.New(st, ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil {
					log.Error().Err(err).Msg("embedded server error")
				}
			}()
			defer srv.Shutdown(context.Background())
			serverAddr = "http://" + ln.Addr().String()

			// Wait for server to be ready
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr)
		app := tui.NewApp(c, tui.Period{EntityID: tuiPeriod.entity, Start: start, End: end})
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	tuiPeriod.register(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}
