// Package mediatypes provides shared image format definitions for spinframe.
//
// It has no dependencies beyond the standard library so that frames,
// optimizer and media can all import it without cycles.
//
// # Extension Matching
//
// Source discovery selects files by extension. MatchesExt is case-insensitive
// and treats aliases of one format as equal:
//
//	mediatypes.MatchesExt("IMG_0001.JPEG", ".jpg") // true
//	mediatypes.MatchesExt("IMG_0001.png", ".jpg")  // false
//
// # Content Sniffing
//
// DetectFormat identifies a file from its magic bytes. It is used for logging
// and metrics labels when a decoder reports a failure, since extensions on
// product photo dumps are not always accurate.
package mediatypes
