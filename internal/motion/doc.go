// Package motion reads OpenSim-style motion (.mot) files into numeric tables.
//
// A motion file is plain text: a free-form header terminated by a line holding
// only the token "endheader", then one line of column names, then whitespace
// separated rows of floating point values. Column 0 is time; the remaining
// columns are channels such as ground reaction force components.
//
//	name grf_force_plate
//	nRows=100
//	nColumns=4
//	inDegrees=no
//	endheader
//	time ground_force_vy ground_force_vx ground_force_vz
//	0.000000 0.000000 0.000000 0.200000
//	...
//
// # Error Handling
//
// A missing file yields an error matching ErrDataUnavailable; the caller
// decides what to substitute. A token that is not a number, or a row whose
// width differs from the first row, yields a *ParseError matching
// ErrMalformedData. No partial table is returned in either case.
//
// Files are re-read on every call; nothing is cached.
package motion
