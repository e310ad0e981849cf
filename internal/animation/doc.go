// Package animation assembles normalized frames into a looping GIF.
//
// Each frame gets its own median-cut palette (github.com/andybons/gogif)
// sized from the configured quality, then is dithered onto it. That palette
// reduction is the lossy step; there is no size search here.
package animation
