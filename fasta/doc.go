/*
Package fasta provides routines for reading and writing FASTA files. Routines
are also provided to read and write aligned fasta files, and to write any
table of rows as FASTA by choosing which fields act as header and sequence.

The format used is the one described by NCBI:
http://blast.ncbi.nlm.nih.gov/blastcgihelp.shtml

By default, sequences are checked to make sure they contain only valid
characters: a-z, A-Z, *, - and '.'. Case is preserved unless the reader is
told to use TranslateUpper, so that reading a file and writing it back
reproduces every header and sequence exactly (line wrapping aside).
*/
package fasta
