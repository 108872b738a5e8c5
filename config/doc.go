// Package config loads parlgraph settings from a YAML file, an optional
// dotenv file and PARLGRAPH_* environment variables.
package config
