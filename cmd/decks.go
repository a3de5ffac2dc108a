package cmd

import (
	"context"
	"fmt"
	"os"

	"card-vault/core/config"
	"card-vault/core/logger"
	"card-vault/core/storage"
	"card-vault/feature/deck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// decksCmd groups deck maintenance operations.
var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Inspect and maintain card decks",
	Long:  `Maintenance frontend for the deck store: list decks or bulk-delete one deck's card images.`,
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every deck and its cards",
	Run: func(cmd *cobra.Command, args []string) {
		runDecksList(cmd.Context())
	},
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete [title]",
	Short: "Delete every card image of a deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDecksDelete(cmd.Context(), args[0])
	},
}

func init() {
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksDeleteCmd)
	RootCmd.AddCommand(decksCmd)
}

func newDeckService() (*deck.Service, *zap.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	return deck.NewService(store, cfg.Storage, logg), logg
}

func runDecksList(ctx context.Context) {
	svc, logg := newDeckService()

	decks, err := svc.ListAllDecks(ctx)
	if err != nil {
		logg.Fatal("Deck listing failed", zap.Error(err))
	}

	fmt.Println("\n--- Decks ---")
	for _, d := range decks {
		fmt.Printf("%s (%d cards)\n", d.Title, len(d.Cards))
		for _, c := range d.Cards {
			fmt.Printf("  - %s\n", c.Name)
		}
	}
	fmt.Println("-------------")
}

func runDecksDelete(ctx context.Context, title string) {
	svc, logg := newDeckService()

	logg.Info("Deleting deck...", zap.String("title", title))
	deleted, err := svc.DeleteDeck(ctx, title)
	if err != nil {
		logg.Fatal("Deck delete failed", zap.Error(err))
	}

	fmt.Printf("Deleted %d card images from deck %q\n", deleted, title)
}
