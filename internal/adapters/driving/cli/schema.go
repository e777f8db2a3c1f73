package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the vector store collection",
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the collection if it does not exist",
	RunE:  runSchemaCreate,
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the collection and all stored vectors",
	RunE:  runSchemaDrop,
}

func init() {
	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDropCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaCreate(cmd *cobra.Command, _ []string) error {
	if vectorStore == nil {
		return errors.New("vector store not configured")
	}

	schema := domain.NewCollectionSchema(collectionClass, embeddingModel)
	if err := vectorStore.EnsureCollection(context.Background(), schema); err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	cmd.Printf("Collection %s ready\n", collectionClass)
	return nil
}

func runSchemaDrop(cmd *cobra.Command, _ []string) error {
	if vectorStore == nil {
		return errors.New("vector store not configured")
	}

	if err := vectorStore.DropCollection(context.Background(), collectionClass); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}

	cmd.Printf("Collection %s dropped\n", collectionClass)
	return nil
}
