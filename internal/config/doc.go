// Package config resolves the sandbox-gen run configuration.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. An optional sandbox-gen.yaml in the working directory
//  3. SANDBOX_GEN_* environment variables
//     (e.g. SANDBOX_GEN_CLEANUP_NODE_MODULES=true, SANDBOX_GEN_OUTPUT_DIR)
//
// Command-line flags override individual settings at the cmd layer.
package config
