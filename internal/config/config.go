package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where setup writes the configuration and where the
// other commands look for it unless --config is given.
const DefaultPath = "config.toml"

type Config struct {
	InputPath       string `toml:"input_path"`
	InputMode       string `toml:"input_mode"` // "single-file" or "directory"
	OutputDirectory string `toml:"output_directory"`

	UserName      string `toml:"user_name"`
	AssistantName string `toml:"assistant_name"`

	OrganizationMode string `toml:"organization_mode"` // flat/category/date/hybrid
	StarredFolder    string `toml:"starred_folder"`
	ArchivedFolder   string `toml:"archived_folder"`
	RegularFolder    string `toml:"regular_folder"`
	DateFolderFormat string `toml:"date_folder_format"`

	SeparateAssetsByType bool `toml:"separate_assets_by_type"`
	UseFrontmatter       bool `toml:"use_frontmatter"`
	UseObsidianCallouts  bool `toml:"use_obsidian_callouts"`

	DateFormat        string `toml:"date_format"`
	FileNameFormat    string `toml:"file_name_format"`
	IncludeDate       bool   `toml:"include_date"`
	MessageSeparator  string `toml:"message_separator"`
	SkipEmptyMessages bool   `toml:"skip_empty_messages"`
}

// Default returns a config with every optional key at its documented default.
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		InputMode:            "single-file",
		OutputDirectory:      filepath.Join(cwd, "MarkdownFiles"),
		UserName:             "User",
		AssistantName:        "ChatGPT",
		OrganizationMode:     "hybrid",
		StarredFolder:        "Starred",
		ArchivedFolder:       "Archived",
		RegularFolder:        "Regular",
		DateFolderFormat:     "YYYY/MM-Month",
		SeparateAssetsByType: true,
		UseFrontmatter:       true,
		UseObsidianCallouts:  true,
		DateFormat:           "01-02-2006",
		FileNameFormat:       "{title}",
		IncludeDate:          true,
		MessageSeparator:     "\n\n",
		SkipEmptyMessages:    true,
	}
}

// Load reads the configuration file at path, filling absent keys with
// defaults. A missing file means setup has not run yet.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s not found (run 'chatgpt2md setup' first)", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as TOML.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
