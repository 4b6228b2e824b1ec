// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreDriver identifies the document store backend.
type StoreDriver string

const (
	DriverMongo  StoreDriver = "mongo"
	DriverSQLite StoreDriver = "sqlite"
	DriverYAML   StoreDriver = "yaml"
)

// Defaults for the store the itterate_yasss commands populate.
const (
	DefaultStoreURI   = "mongodb://localhost:27017"
	DefaultDatabase   = "yasss_om-api_com"
	DefaultCollection = "api_cache"
	DefaultOutputPath = "score_ids.csv"
)

// StoreConfig holds connection settings for the document store.
type StoreConfig struct {
	// Driver selects the backend: mongo, sqlite, or yaml (default mongo).
	Driver StoreDriver `json:"driver" yaml:"driver"`

	// URI is the MongoDB connection string (e.g. "mongodb://localhost:27017").
	URI string `json:"uri" yaml:"uri"`

	// Database and Collection name the MongoDB namespace to query.
	Database   string `json:"database" yaml:"database"`
	Collection string `json:"collection" yaml:"collection"`

	// Path is the database file for the sqlite driver or the fixture
	// file for the yaml driver.
	Path string `json:"path" yaml:"path"`

	// Username and Password are optional MongoDB credentials. They are
	// normally loaded from .secrets/ rather than the config file.
	Username string `json:"-" yaml:"-"`
	Password string `json:"-" yaml:"-"`
}

// ExportFormat selects the output file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ExportConfig holds settings for the output file.
type ExportConfig struct {
	// Path is the output file, relative to the working directory
	// (default "score_ids.csv").
	Path string `json:"path" yaml:"path"`

	// Format selects the serializer: csv, json, or yaml (default csv).
	Format ExportFormat `json:"format" yaml:"format"`
}

// Config groups the settings for one export run.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Export ExportConfig `json:"export" yaml:"export"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c Config) WithDefaults() Config {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMongo
	}
	if c.Store.URI == "" {
		c.Store.URI = DefaultStoreURI
	}
	if c.Store.Database == "" {
		c.Store.Database = DefaultDatabase
	}
	if c.Store.Collection == "" {
		c.Store.Collection = DefaultCollection
	}
	if c.Export.Path == "" {
		c.Export.Path = DefaultOutputPath
	}
	if c.Export.Format == "" {
		c.Export.Format = FormatCSV
	}
	return c
}
