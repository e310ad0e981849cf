// Package media wraps the image codecs spinframe depends on.
//
// Decoding goes through OpenImage, which tries imaging, the stdlib decoders,
// libvips and finally ffmpeg. Encoding to WebP and optimized JPEG goes through
// libvips (ExportWebP, ExportJPEG). Call InitVips once before encoding.
package media
