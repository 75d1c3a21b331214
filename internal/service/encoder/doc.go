// Package encoder is the entry point behind the ipmi-fru-it command.
//
// It loads the FRU description, assembles the image in memory, enforces the
// optional size limit and only then writes the output file. A JSON layout
// report of the produced image can be printed alongside.
package encoder
