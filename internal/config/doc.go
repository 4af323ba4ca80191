// Package config defines the settings of a create run.
//
// A [CreateConfig] starts from [DefaultCreateConfig], is optionally overlaid
// by a YAML file ([LoadFile]) and then by command-line flags. The API token
// and endpoint come from the environment, which may be seeded from a dotenv
// file ([LoadEnvFile]). Hetzner Cloud API call limits are read separately by
// [LoadTimeouts].
package config
