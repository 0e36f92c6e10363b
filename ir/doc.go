// Package ir contains the document tree representation shared by the
// parser, the serializer and the disassembly/reassembly engines.
package ir
