package config

// DefaultConfig returns a Config with sensible defaults: a local Ollama
// setup needing no API key, reference chunking parameters, and state kept
// under .docqa/ in the working directory.
func DefaultConfig() *Config {
	return &Config{
		Provider:            ProviderOllama,
		Model:               "llama3.2",
		EmbeddingProvider:   ProviderOllama,
		EmbeddingModel:      "nomic-embed-text",
		EmbeddingDimensions: 768,
		OllamaBaseURL:       "http://localhost:11434",
		DataDir:             ".docqa/vectordb",
		HistoryDB:           ".docqa/history.db",
		Collection:          "documents",
		ChunkSize:           500,
		ChunkOverlap:        50,
		TopK:                3,
		MaxConcurrency:      4,
	}
}
