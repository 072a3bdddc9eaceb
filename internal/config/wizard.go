package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// modelPresets maps each provider to its default generation and embedding
// models.
var modelPresets = map[ProviderType]struct {
	Model               string
	EmbeddingModel      string
	EmbeddingDimensions int
}{
	ProviderOllama: {Model: "llama3.2", EmbeddingModel: "nomic-embed-text", EmbeddingDimensions: 768},
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small", EmbeddingDimensions: 1536},
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docqa.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docqa! Let's configure your setup.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select model provider",
		Items: []string{"ollama", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)
	preset := modelPresets[provider]

	cfg.Provider = provider
	cfg.EmbeddingProvider = provider
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.EmbeddingDimensions = preset.EmbeddingDimensions

	// 2. Generation model.
	modelPrompt := promptui.Prompt{
		Label:   "Generation model",
		Default: preset.Model,
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Chunking parameters.
	sizePrompt := promptui.Prompt{
		Label:    "Chunk size (characters)",
		Default:  strconv.Itoa(cfg.ChunkSize),
		Validate: validatePositiveInt,
	}
	sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk size: %w", err)
	}
	cfg.ChunkSize, _ = strconv.Atoi(sizeStr)

	overlapPrompt := promptui.Prompt{
		Label:    "Chunk overlap (characters)",
		Default:  strconv.Itoa(cfg.ChunkOverlap),
		Validate: validateNonNegativeInt,
	}
	overlapStr, err := overlapPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk overlap: %w", err)
	}
	cfg.ChunkOverlap, _ = strconv.Atoi(overlapStr)

	// 4. Retrieval depth.
	topKPrompt := promptui.Prompt{
		Label:    "Chunks retrieved per question",
		Default:  strconv.Itoa(cfg.TopK),
		Validate: validatePositiveInt,
	}
	topKStr, err := topKPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("top k: %w", err)
	}
	cfg.TopK, _ = strconv.Atoi(topKStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running docqa.\n", envVar)
	}

	configPath := ".docqa.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
