// Package blob reads and writes whole files for the encoder.
//
// The FileRepository reads the internal-use payload and writes the finished
// FRU image. Writes go through a temporary file in the target directory and
// a rename, so a failed run never leaves a truncated image behind.
package blob
