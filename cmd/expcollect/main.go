package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sliink/expcollect/internal/api"
	"github.com/sliink/expcollect/internal/core"
	"github.com/sliink/expcollect/internal/producer"
	"github.com/spf13/cobra"
)

var (
	configFile string
	repoPath   string
	outputDir  string
	prompt     string
	response   string
	apiEnabled bool
	apiPort    int
	apiHost    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "expcollect",
		Short: "Experiment Collector - Capture commit, analysis, AI interaction and coverage records as JSON documents",
		Run:   runCollector,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo-path", ".", "Path to the subject repository (labeling only)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "./logs", "Destination directory for written documents")
	rootCmd.PersistentFlags().StringVar(&prompt, "prompt", "", "Override the sample AI interaction prompt")
	rootCmd.PersistentFlags().StringVar(&response, "response", "", "Override the sample AI interaction response")

	// API server flags
	rootCmd.PersistentFlags().BoolVar(&apiEnabled, "api", false, "Keep running and serve the inspection API after collecting")
	rootCmd.PersistentFlags().IntVar(&apiPort, "api-port", 8088, "API server port")
	rootCmd.PersistentFlags().StringVar(&apiHost, "api-host", "localhost", "API server host")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCollector(cmd *cobra.Command, args []string) {
	c := core.NewCore(
		core.WithRepoPath(repoPath),
		core.WithOutputDir(outputDir),
	)

	if !c.Initialize() {
		fmt.Fprintln(os.Stderr, "failed to initialize core system")
		os.Exit(1)
	}

	// Load configuration if provided; explicitly set flags win over file values
	if configFile != "" {
		configManager := c.GetConfigManager()
		if err := configManager.LoadConfig(configFile); err != nil {
			fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
			os.Exit(1)
		}
		if !cmd.Flags().Changed("repo-path") {
			c.SetRepoPath(configManager.GetString("repo_path", repoPath))
		}
		if !cmd.Flags().Changed("output-dir") {
			c.SetOutputDir(configManager.GetString("output_dir", outputDir))
		}
	}

	if err := registerProducers(c); err != nil {
		fmt.Fprintln(os.Stderr, "failed to register producers:", err)
		os.Exit(1)
	}

	if !c.Start() {
		fmt.Fprintln(os.Stderr, "failed to start core system")
		os.Exit(1)
	}

	report := c.Run()
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "[error] %s (%s): %s\n", failure.Producer, failure.Filename, failure.Error)
	}

	if apiEnabled {
		serveAPI(c)
	}

	if !c.Stop() {
		fmt.Fprintln(os.Stderr, "failed to stop core system cleanly")
		os.Exit(1)
	}

	if !report.Succeeded() {
		os.Exit(1)
	}
}

// serveAPI blocks serving the inspection API until an interrupt arrives
func serveAPI(c *core.Core) {
	apiServer := api.NewAPI(c, apiPort, apiHost)

	go func() {
		fmt.Printf("[info] serving inspection API at %s:%d\n", apiHost, apiPort)
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %s\n", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "API server shutdown error: %s\n", err)
	}
}

// registerProducers creates and registers the four standard producers in the
// order their documents are written
func registerProducers(c *core.Core) error {
	configManager := c.GetConfigManager()

	commit := producer.NewCommitProducer("commit_metadata")
	commitConfig := producerConfig(configManager, "commit_metadata")
	commitConfig["repo_path"] = c.RepoPath()
	commit.Configure(commitConfig)

	sonar := producer.NewSonarProducer("sonar_metrics")
	sonar.Configure(producerConfig(configManager, "sonar_metrics"))

	interaction := producer.NewInteractionProducer("ai_interaction")
	interactionConfig := producerConfig(configManager, "ai_interaction")
	if prompt != "" {
		interactionConfig["prompt"] = prompt
	}
	if response != "" {
		interactionConfig["response"] = response
	}
	interaction.Configure(interactionConfig)

	coverage := producer.NewCoverageProducer("coverage")
	coverage.Configure(producerConfig(configManager, "coverage"))

	if err := c.RegisterProducer(commit); err != nil {
		return err
	}
	if err := c.RegisterProducer(sonar); err != nil {
		return err
	}
	if err := c.RegisterProducer(interaction); err != nil {
		return err
	}
	if err := c.RegisterProducer(coverage); err != nil {
		return err
	}

	return nil
}

// producerConfig extracts a producer's configuration subtree, always
// returning a mutable map
func producerConfig(configManager *core.ConfigManager, id string) map[string]interface{} {
	config := make(map[string]interface{})
	if sub, ok := configManager.GetConfig("producers."+id, nil).(map[string]interface{}); ok {
		for k, v := range sub {
			config[k] = v
		}
	}
	return config
}
