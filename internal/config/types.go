package config

// ProviderType identifies a model provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level docqa configuration, corresponding to .docqa.yml.
type Config struct {
	Provider            ProviderType `yaml:"provider" koanf:"provider"`
	Model               string       `yaml:"model" koanf:"model"`
	EmbeddingProvider   ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel      string       `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDimensions int          `yaml:"embedding_dimensions" koanf:"embedding_dimensions"`
	OllamaBaseURL       string       `yaml:"ollama_base_url" koanf:"ollama_base_url"`
	DataDir             string       `yaml:"data_dir" koanf:"data_dir"`
	HistoryDB           string       `yaml:"history_db" koanf:"history_db"`
	Collection          string       `yaml:"collection" koanf:"collection"`
	ChunkSize           int          `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap        int          `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	TopK                int          `yaml:"top_k" koanf:"top_k"`
	MaxConcurrency      int          `yaml:"max_concurrency" koanf:"max_concurrency"`
}
