// Package config provides configuration loading, validation, and
// defaulting for GuestReview Genius.
//
// Configuration is read from a YAML file into the Config structure.
// Defaults are applied for unset fields, environment variables of the
// form GENIUS_SECTION_FIELD override file values, and the final
// configuration is validated before use.
//
// Typical usage:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("genius.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// A process-wide singleton is also available for code paths without
// access to the loaded instance:
//
//	if err := config.Initialize("genius.yaml"); err != nil {
//		log.Fatal(err)
//	}
//	cfg := config.MustGetConfig()
//
// Secrets such as the upstream API key should be provided through
// environment variables (GENIUS_UPSTREAM_API_KEY or OPENAI_API_KEY)
// rather than committed to configuration files.
package config
