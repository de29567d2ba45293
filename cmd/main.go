package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"travel-itinerary-service/internal/app"
	"travel-itinerary-service/internal/config"
	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/logging"
	"travel-itinerary-service/internal/prompt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "itinerary",
		Short:        "Travel itinerary planner",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, json or toml)")

	root.AddCommand(serveCmd(&configPath), promptCmd())
	return root
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			deps, err := app.Wire(cmd.Context(), cfg, log)
			if err != nil {
				log.Fatal("startup failed", zap.Error(err))
			}

			server := app.New(deps)
			log.Info("🚀 listening", zap.String("addr", cfg.Server.Addr))
			if err := server.Listen(cfg.Server.Addr); err != nil {
				log.Fatal("server could not start", zap.Error(err))
			}
			return nil
		},
	}
}

func promptCmd() *cobra.Command {
	var (
		file         string
		templateFile string
		currency     string
		policy       string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt a travel request would produce, without calling the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			raw := map[string]any{}
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			p, err := intake.ParsePolicy(policy)
			if err != nil {
				return err
			}
			req, err := intake.NewDecoder(p, zap.NewNop()).Decode(raw)
			if err != nil {
				return err
			}

			builder, err := prompt.NewBuilder(templateFile, currency)
			if err != nil {
				return err
			}
			text, err := builder.Build(req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "travel request as JSON")
	cmd.Flags().StringVar(&templateFile, "template", "", "prompt template file (defaults to the embedded one)")
	cmd.Flags().StringVar(&currency, "currency", "INR", "budget currency")
	cmd.Flags().StringVar(&policy, "policy", "tolerate", "destination count policy: tolerate or reject")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
