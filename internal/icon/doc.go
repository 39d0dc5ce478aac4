// Package icon decodes embedded icons and normalizes them for hashing.
//
// Decoding is split by container: .ico files are parsed directly, while
// .exe/.dll binaries go through PE resource extraction first. Decoded
// images are canonicalized to NRGBA at a ladder size (or at native size
// when smaller than every rung; icons are never upscaled) so identical
// artwork hashes identically regardless of source container or allocation.
package icon
