// Package cli implements the lagrum command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/nordlaw/lagrum/internal/core/ports/driven"
	"github.com/nordlaw/lagrum/internal/core/ports/driving"
	"github.com/nordlaw/lagrum/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute runs.
// Commands check for nil so that unit tests can run individual commands
// without a full wiring.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
	corpusSource  driven.CorpusSource
	recordStore   driven.RecordStore
	vectorStore   driven.VectorStore

	// collectionClass and embeddingModel describe the target collection
	// for the schema commands.
	collectionClass string
	embeddingModel  string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lagrum",
	Short: "Ask questions about Swedish legislation",
	Long: `lagrum scrapes the Swedish SFS register, embeds the legislation
into a vector store and answers free-text questions about it with
source references.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string displayed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the driving services used by the commands.
func SetServices(ingest driving.IngestService, query driving.QueryService) {
	ingestService = ingest
	queryService = query
}

// SetCorpusSource injects the register scraper.
func SetCorpusSource(source driven.CorpusSource) {
	corpusSource = source
}

// SetRecordStore injects the scraped-record cache.
func SetRecordStore(store driven.RecordStore) {
	recordStore = store
}

// SetVectorStore injects the vector store used by the schema commands.
func SetVectorStore(store driven.VectorStore, class, model string) {
	vectorStore = store
	collectionClass = class
	embeddingModel = model
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
