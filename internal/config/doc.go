// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the mail sync client and the development server.
//
// Configuration is assembled from several sources. When two sources set the
// same field, the earlier source in this list wins:
//  1. Environment variables (a .env file in the working directory is loaded
//     first and never overrides variables already set)
//  2. Command-line flags
//  3. JSON or YAML config file, chosen by extension
//  4. Built-in defaults
//
// The entry points are [GetClientConfig] and [GetServerConfig], which return
// validated views of the merged [StructuredConfig].
package config
