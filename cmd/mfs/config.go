package main

import (
	"compress/gzip"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"
	"github.com/weberc2/mfs/pkg/objectstore"
	"gopkg.in/yaml.v2"

	. "github.com/weberc2/mfs/pkg/types"
)

const (
	envVarPrefix = "MFS"
	appName      = "mfs"
)

type Config struct {
	LogLevel  string         `envconfig:"LOG_LEVEL"  yaml:"logLevel"`
	Prompt    string         `envconfig:"PROMPT"     yaml:"prompt"`
	Geometry  GeometryConfig `envconfig:"GEOMETRY"   yaml:"geometry"`
	S3        S3Config       `envconfig:"S3"         yaml:"s3"`
	GzipLevel int            `envconfig:"GZIP_LEVEL" yaml:"gzipLevel"`
}

// GeometryConfig sizes newly created images.
type GeometryConfig struct {
	BlockSize      int64  `envconfig:"BLOCK_SIZE"       yaml:"blockSize"`
	BlockCount     uint64 `envconfig:"BLOCK_COUNT"      yaml:"blockCount"`
	FirstDataBlock uint64 `envconfig:"FIRST_DATA_BLOCK" yaml:"firstDataBlock"`
	InodeCount     uint64 `envconfig:"INODE_COUNT"      yaml:"inodeCount"`
	BlocksPerFile  uint64 `envconfig:"BLOCKS_PER_FILE"  yaml:"blocksPerFile"`
	MaxFileSize    int64  `envconfig:"MAX_FILE_SIZE"    yaml:"maxFileSize"`
}

func (gc *GeometryConfig) Geometry() Geometry {
	return Geometry{
		BlockSize:      Byte(gc.BlockSize),
		BlockCount:     Block(gc.BlockCount),
		FirstDataBlock: Block(gc.FirstDataBlock),
		InodeCount:     Ino(gc.InodeCount),
		BlocksPerFile:  Block(gc.BlocksPerFile),
		MaxFileSize:    Byte(gc.MaxFileSize),
	}
}

type S3Config struct {
	Enabled        bool   `envconfig:"ENABLED"          yaml:"enabled"`
	Region         string `envconfig:"REGION"           yaml:"region"`
	Endpoint       string `envconfig:"ENDPOINT"         yaml:"endpoint"`
	ForcePathStyle bool   `envconfig:"FORCE_PATH_STYLE" yaml:"forcePathStyle"`
}

func DefaultConfig() Config {
	g := DefaultGeometry
	return Config{
		LogLevel: "info",
		Prompt:   appName + "> ",
		Geometry: GeometryConfig{
			BlockSize:      int64(g.BlockSize),
			BlockCount:     uint64(g.BlockCount),
			FirstDataBlock: uint64(g.FirstDataBlock),
			InodeCount:     uint64(g.InodeCount),
			BlocksPerFile:  uint64(g.BlocksPerFile),
			MaxFileSize:    int64(g.MaxFileSize),
		},
		GzipLevel: gzip.BestCompression,
	}
}

// LoadConfig layers the config file, then environment variables, over the
// defaults. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE")
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating config file: %w", err)
		}
		configFile = filepath.Join(home, ".config", appName+".yaml")
	}

	c := DefaultConfig()
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling config file: %w", err)
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if y, e := func() (string, string) {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return "logLevel", "LOG_LEVEL"
		}
		geometry := c.Geometry.Geometry()
		if err := image.ValidateGeometry(&geometry); err != nil {
			return "geometry", "GEOMETRY_*"
		}
		if c.S3.Enabled && c.S3.Region == "" {
			return "s3.region", "S3_REGION"
		}
		if c.GzipLevel < gzip.HuffmanOnly || c.GzipLevel > gzip.BestCompression {
			return "gzipLevel", "GZIP_LEVEL"
		}
		return "", ""
	}(); y != "" {
		return fmt.Errorf(
			"invalid configuration: %s / %s_%s",
			y,
			envVarPrefix,
			e,
		)
	}
	return nil
}

// Router builds the object store router that images are saved through.
func (c *Config) Router() (*objectstore.Router, error) {
	router := objectstore.Router{
		Files:     objectstore.FileObjectStore{},
		GzipLevel: c.GzipLevel,
	}
	if c.S3.Enabled {
		store, err := objectstore.NewS3ObjectStore(&objectstore.S3Config{
			Region:         c.S3.Region,
			Endpoint:       c.S3.Endpoint,
			ForcePathStyle: c.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		router.S3 = store
	}
	return &router, nil
}
