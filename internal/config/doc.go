/*
Package config holds the settings for both spinframe pipelines.

Values are layered, each overriding the last:

 1. Default(), the tool's fixed constants
 2. an optional TOML file (Load with a path)
 3. SPINFRAME_* environment variables (ApplyEnv)
 4. command-line flags, applied by cmd/spinframe

A minimal file:

	[source]
	input_dir = "1012B767/images/lv1"

	[thumbnails]
	output_dir = "optimized-webp"
	budget_bytes = 20480

	[animation]
	output = "product-360.gif"
	skip = 1

Call Validate before use and Log to print the effective values.
*/
package config
