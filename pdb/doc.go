/*
Package pdb reads the coordinate section of PDB files and extracts the
ordered amino acid residues of chosen chains, together with the position
labels (residue number plus insertion code) the structure's authors gave
them.

Only the first model of a file is read. ATOM and HETATM records are grouped
into residues in the order they appear; chain ' ' is renamed to '_'.

Extraction (Entry.Sites) keeps only ATOM residues with a three letter name.
Waters, ligands and nucleotides are skipped, while a three letter name
that has no one letter code is reported as an *UnknownResidueError.
*/
package pdb
