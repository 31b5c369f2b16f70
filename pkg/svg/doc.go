// Package svg loads keyframe documents and reads the geometry svgtween
// interpolates.
//
// A [Document] owns its element tree. [Document.Clone] is a structural deep
// copy of that tree, so interpolated frames never share nodes with the
// keyframes they were derived from and never depend on re-parsing text.
//
// # Path Data
//
// [ParsePath] tokenizes the compact SVG path grammar hand-authored files tend
// to use: a sign or a second decimal point starts a new number, so
// "30-5.46.26" reads as 30, -5.46 and .26. Implicit repeated commands become
// separate [Command] values of the command's arity. Arc flags are read as
// single 0/1 characters, so "0 015 5" is 0, 0, 1, 5, 5. Data that cannot be
// tokenized, or whose argument count leaves a partial group, yields an empty
// slice rather than an error, and callers treat such an element as excluded
// from interpolation.
//
// [FormatPath] writes commands back with every number fixed to two decimals
// and arc flags as a bare 0 or 1.
package svg
