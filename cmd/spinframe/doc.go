// Command spinframe turns a directory of 360° product photos into web assets.
//
// # Usage
//
//	spinframe thumbnails   # one budgeted WebP/JPEG still per photo
//	spinframe animate      # one looping GIF of all photos
//	spinframe all          # both, thumbnails first
//	spinframe version
//
// # Thumbnails
//
// Every photo is fitted onto a white 112x112 canvas and encoded as WebP at the
// highest quality in 95, 90, 85, 80, 75, 70 that stays within 20 KiB. If no
// WebP quality fits, JPEG is tried from 50 down to 10 in steps of 5. If that
// fails too, the smallest encoding found is kept and listed as exceeding the
// budget in the final summary. Exactly one file per photo is left in the
// output directory, which must not be the input directory. Outputs are named
// after the photo without its extension, so when two photos share that name
// ("001.jpg" and "001.jpeg") only the first is used and the other is reported
// as skipped.
//
// While a pipeline runs it holds "<output>.lock" next to its output. The
// file is removed when the run ends.
//
// # Animation
//
// Photos are fitted onto a 150x150 canvas and written as a GIF with a 50ms
// frame delay that loops forever. --skip N uses every (N+1)-th photo.
//
// # Configuration
//
// Settings come from built-in defaults, then the TOML file given with
// --config, then SPINFRAME_INPUT_DIR, SPINFRAME_OUTPUT_DIR,
// SPINFRAME_BUDGET_BYTES, SPINFRAME_ANIMATION_OUTPUT and
// SPINFRAME_METRICS_FILE, then flags. LOG_LEVEL and DEBUG set the log level
// unless --verbose or --quiet is given. MEMORY_LIMIT and MEMORY_RATIO size
// GOMEMLIMIT in containers.
//
// # Exit Status
//
// spinframe exits 0 when a pipeline finds no input (it prints a notice and
// writes nothing). It exits 1 on invalid configuration, when another run
// holds the lock for the same output, when no photo could be loaded for the
// animation, or when interrupted.
package main
