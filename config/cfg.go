package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"htmlview/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// PresentationConfig carries visual tokens attached to produced
	// descriptors. Host toolkit decides how to honor them.
	PresentationConfig struct {
		ListSpacing        float64 `yaml:"list_spacing" validate:"gte=0"`
		TableSpacing       float64 `yaml:"table_spacing" validate:"gte=0"`
		TableHeaderLines   int     `yaml:"table_header_lines" validate:"gte=0"`
		CodeFontSize       float64 `yaml:"code_font_size" validate:"gt=0"`
		PlaceholderOpacity float64 `yaml:"placeholder_opacity" validate:"gte=0,lte=1"`
		Bullet             string  `yaml:"bullet" validate:"required"`
	}

	DocumentConfig struct {
		BlockSpacing          float64            `yaml:"block_spacing" validate:"gte=0"`
		MaxDepth              int                `yaml:"max_depth" validate:"min=1,max=4096"`
		Segmentation          common.SegmentMode `yaml:"segmentation" validate:"gte=0"`
		InlineStyles          bool               `yaml:"inline_styles"`
		Anchors               bool               `yaml:"anchors"`
		Presentation          PresentationConfig `yaml:"presentation"`
		OutputNameTemplate    string             `yaml:"output_name_template"`
		FileNameTransliterate bool               `yaml:"file_name_transliterate"`
	}

	ImageCacheConfig struct {
		Entries int    `yaml:"entries" validate:"gte=0"`
		Path    string `yaml:"path,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	}

	ImagesConfig struct {
		Enable        bool                   `yaml:"enable"`
		Concurrency   int                    `yaml:"concurrency" validate:"min=1,max=64"`
		Timeout       time.Duration          `yaml:"timeout" validate:"gte=0"`
		MaxBytes      int64                  `yaml:"max_bytes" validate:"gt=0"`
		UserAgent     string                 `yaml:"user_agent"`
		Authorization SecretString           `yaml:"authorization,omitempty"`
		Resize        common.ImageResizeMode `yaml:"resize" validate:"gte=0"`
		Width         int                    `yaml:"width" validate:"gte=0"`
		Height        int                    `yaml:"height" validate:"gte=0"`
		Cache         ImageCacheConfig       `yaml:"cache"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Images    ImagesConfig   `yaml:"images"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
